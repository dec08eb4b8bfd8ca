// Package main is the eidos command line tool: it turns natural-language
// prompts into validated shell commands and also answers shell questions
// through chat and translates foreign-language prompts.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Ru1vly/Eidos/internal/bridge"
	"github.com/Ru1vly/Eidos/internal/chat"
	"github.com/Ru1vly/Eidos/internal/config"
	"github.com/Ru1vly/Eidos/internal/orchestrator"
	"github.com/Ru1vly/Eidos/internal/output"
	"github.com/Ru1vly/Eidos/internal/safety"
	"github.com/Ru1vly/Eidos/internal/translate"
)

const usage = `Usage: eidos [-v|-d] <core|chat|translate> "input" [options]

Subcommands:
  core "prompt"       generate a shell command from a natural-language prompt
      -n N            also suggest up to N safe alternatives
      -e              explain the generated command
      -o text|json    output format (default text)
  chat "text"         ask a question about shell commands (needs GEMINI_API_KEY)
  translate "text"    detect the language and translate to the configured target
      -o text|json    output format (default text)

Global options:
  -v    verbose logging
  -d    debug logging
`

// Dependencies holds the components required to run the application.
type Dependencies struct {
	Config *config.Config
	Rules  *safety.RuleSet
	Logger *zap.Logger
	Stdout func(string)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	verbose := false
	debug := false
	globals := flag.NewFlagSet("eidos", flag.ContinueOnError)
	globals.BoolVar(&verbose, "v", false, "verbose logging")
	globals.BoolVar(&debug, "d", false, "debug logging")
	globals.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	if err := globals.Parse(args); err != nil {
		return 2
	}
	rest := globals.Args()
	if len(rest) < 1 {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	request, err := bridge.ParseRequest(rest[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	logger, err := buildLogger(verbose, debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		return 1
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration.\n")
		cfg = config.DefaultConfig()
	}

	rules, err := ruleSet(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	deps := Dependencies{
		Config: cfg,
		Rules:  rules,
		Logger: logger,
		Stdout: func(s string) { fmt.Print(s) },
	}

	input, flagArgs := splitInput(rest[1:])
	if input == "" {
		fmt.Fprintf(os.Stderr, "Error: %s requires an input argument\n", request)
		return 2
	}

	router, err := newBridge(deps, request, flagArgs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if err := router.Route(context.Background(), request, input); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// splitInput separates the quoted input text from trailing option flags.
func splitInput(args []string) (string, []string) {
	if len(args) == 0 {
		return "", nil
	}
	return args[0], args[1:]
}

// buildLogger configures zap by verbosity. Errors always reach stderr; -v
// adds info, -d adds debug with development formatting.
func buildLogger(verbose, debug bool) (*zap.Logger, error) {
	if debug {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		return cfg.Build()
	}

	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	}
	return cfg.Build()
}

// ruleSet builds the safety rule set from config, including any extra
// whitelist entries and rules.
func ruleSet(cfg *config.Config) (*safety.RuleSet, error) {
	opts, err := cfg.SafetyOptions()
	if err != nil {
		return nil, err
	}
	return safety.NewRuleSet(opts)
}

// coreFlags are the options of the core subcommand.
type coreFlags struct {
	alternatives int
	explain      bool
	format       output.Format
}

func parseCoreFlags(args []string) (coreFlags, error) {
	fs := flag.NewFlagSet("core", flag.ContinueOnError)
	n := fs.Int("n", 0, "number of alternatives")
	explain := fs.Bool("e", false, "explain the command")
	formatStr := fs.String("o", "text", "output format")
	if err := fs.Parse(args); err != nil {
		return coreFlags{}, err
	}
	format, err := output.ParseFormat(*formatStr)
	if err != nil {
		return coreFlags{}, err
	}
	if *n < 0 {
		return coreFlags{}, fmt.Errorf("-n cannot be negative")
	}
	return coreFlags{alternatives: *n, explain: *explain, format: format}, nil
}

func parseFormatFlag(name string, args []string) (output.Format, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	formatStr := fs.String("o", "text", "output format")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	return output.ParseFormat(*formatStr)
}

// newBridge wires the handler for the requested subsystem. Only the handler
// being routed to is constructed; the others stay nil.
func newBridge(deps Dependencies, request bridge.Request, flagArgs []string) (*bridge.Bridge, error) {
	router := &bridge.Bridge{}

	switch request {
	case bridge.RequestCore:
		flags, err := parseCoreFlags(flagArgs)
		if err != nil {
			return nil, err
		}
		router.Core = coreHandler(deps, flags)

	case bridge.RequestChat:
		router.Chat = chatHandler(deps)

	case bridge.RequestTranslate:
		format, err := parseFormatFlag("translate", flagArgs)
		if err != nil {
			return nil, err
		}
		router.Translate = translateHandler(deps, format)
	}

	return router, nil
}

func coreHandler(deps Dependencies, flags coreFlags) bridge.Handler {
	return func(ctx context.Context, input string) error {
		service := orchestrator.NewService(deps.Config, deps.Rules, deps.Logger)
		result, err := service.GenerateCommand(ctx, input, orchestrator.GenerateOptions{
			Alternatives: flags.alternatives,
			Explain:      flags.explain,
		})
		if err != nil {
			return err
		}

		rendered, err := output.RenderCommand(result, flags.format)
		if err != nil {
			return err
		}
		deps.Stdout(rendered)

		if !result.IsSafe {
			return errors.New("generated command was blocked")
		}
		return nil
	}
}

func chatHandler(deps Dependencies) bridge.Handler {
	return func(ctx context.Context, input string) error {
		client, err := chat.NewSDKClientFromEnv(ctx)
		if err != nil {
			return err
		}

		session := chat.NewSession(client, chat.Options{
			Model:          deps.Config.Chat.Model,
			MaxMessages:    deps.Config.Chat.MaxMessages,
			MaxInputLength: deps.Config.Safety.MaxChatInputLength,
		})

		reply, err := session.Send(ctx, input)
		if err != nil {
			return err
		}
		deps.Stdout(reply + "\n")
		return nil
	}
}

func translateHandler(deps Dependencies, format output.Format) bridge.Handler {
	return func(ctx context.Context, input string) error {
		if err := safety.CheckInput(input, deps.Config.Safety.MaxTranslateInputLength); err != nil {
			return err
		}

		client := translate.NewClient(translate.ClientOptions{
			BaseURL:        baseURLFromEnv(deps.Config),
			APIKey:         os.Getenv(translate.EnvAPIKey),
			RequestTimeout: time.Duration(deps.Config.Translate.RequestTimeoutSecs) * time.Second,
			ConnectTimeout: time.Duration(deps.Config.Translate.ConnectTimeoutSecs) * time.Second,
		})
		service := translate.NewService(client, deps.Config.Translate.TargetLanguage)

		result, err := service.DetectAndTranslate(ctx, input)
		if err != nil {
			return err
		}

		rendered, err := output.RenderTranslation(&result, format)
		if err != nil {
			return err
		}
		deps.Stdout(rendered)
		return nil
	}
}

// baseURLFromEnv lets LIBRETRANSLATE_URL override the configured endpoint.
func baseURLFromEnv(cfg *config.Config) string {
	if url := os.Getenv(translate.EnvBaseURL); url != "" {
		return url
	}
	return cfg.Translate.BaseURL
}

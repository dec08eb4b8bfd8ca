package bridge

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridge_Route_DispatchesToHandler(t *testing.T) {
	var called Request = -1
	var gotInput string
	record := func(kind Request) Handler {
		return func(ctx context.Context, input string) error {
			called = kind
			gotInput = input
			return nil
		}
	}

	b := &Bridge{
		Core:      record(RequestCore),
		Chat:      record(RequestChat),
		Translate: record(RequestTranslate),
	}

	for _, kind := range []Request{RequestCore, RequestChat, RequestTranslate} {
		called = -1
		err := b.Route(context.Background(), kind, "input for "+kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, called)
		assert.Equal(t, "input for "+kind.String(), gotInput)
	}
}

func TestBridge_Route_PropagatesHandlerError(t *testing.T) {
	sentinel := errors.New("handler failed")
	b := &Bridge{
		Core: func(ctx context.Context, input string) error { return sentinel },
	}

	err := b.Route(context.Background(), RequestCore, "x")

	assert.ErrorIs(t, err, sentinel)
}

func TestBridge_Route_MissingHandler(t *testing.T) {
	b := &Bridge{}

	err := b.Route(context.Background(), RequestChat, "x")

	assert.ErrorIs(t, err, ErrNoHandler)
	assert.Contains(t, err.Error(), "chat")
}

func TestBridge_Route_UnknownRequest(t *testing.T) {
	b := &Bridge{
		Core: func(ctx context.Context, input string) error { return nil },
	}

	err := b.Route(context.Background(), Request(42), "x")

	assert.ErrorIs(t, err, ErrUnknownRequest)
}

func TestParseRequest(t *testing.T) {
	cases := []struct {
		in      string
		want    Request
		wantErr bool
	}{
		{"core", RequestCore, false},
		{"chat", RequestChat, false},
		{"translate", RequestTranslate, false},
		{"qa", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseRequest(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrUnknownRequest, "input %q", tc.in)
		} else {
			require.NoError(t, err, "input %q", tc.in)
			assert.Equal(t, tc.want, got)
		}
	}
}

func TestRequest_String(t *testing.T) {
	assert.Equal(t, "core", RequestCore.String())
	assert.Equal(t, "chat", RequestChat.String())
	assert.Equal(t, "translate", RequestTranslate.String())
	assert.Equal(t, "Request(42)", Request(42).String())
}

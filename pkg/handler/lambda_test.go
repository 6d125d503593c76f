package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/3s-rg-codes/nativeabs/pkg/native"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLambdaInvoke(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
	}{
		{name: "object", payload: []byte(`{"k":"v"}`)},
		{name: "null", payload: []byte(`null`)},
		{name: "empty", payload: []byte{}},
		{name: "nil", payload: nil},
		{name: "not json", payload: []byte(`not json`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			binder := &fakeBinder{}
			l := NewLambdaHandler(newTestHandler(binder))

			ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "req-" + tt.name})
			out, err := l.Invoke(ctx, tt.payload)
			require.NoError(t, err)

			assert.Equal(t, "123", string(out))
			assert.Equal(t, 1, binder.releases)
		})
	}
}

func TestLambdaInvokeDoesNotMutatePayload(t *testing.T) {
	payload := []byte(`{"k":"v"}`)

	_, err := NewLambdaHandler(newTestHandler(&fakeBinder{})).Invoke(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, `{"k":"v"}`, string(payload))
}

func TestLambdaInvokeBindingError(t *testing.T) {
	bindErr := &native.BindingError{Library: "libc.so.6", Err: errors.New("no such file")}
	l := NewLambdaHandler(newTestHandler(&fakeBinder{err: bindErr}))

	out, err := l.Invoke(context.Background(), []byte(`{}`))

	assert.Nil(t, out)
	assert.ErrorIs(t, err, bindErr)
}

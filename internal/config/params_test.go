package config_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/daedaly/internal/config"
	"github.com/nhle/daedaly/internal/model"
	"github.com/nhle/daedaly/tests/testutil"
)

func TestLayeredParamPrecedence(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	app := &model.AppConfig{AI: map[string]string{
		"what_gpt_use": "gemini",
		"gemini_model": "gemini-2.0-flash",
	}}
	l := config.NewLayered(s, app, nil)

	got, err := l.Param(ctx, model.ParamProvider, "openai")
	require.NoError(t, err)
	assert.Equal(t, "gemini", got, "config file beats default")

	require.NoError(t, s.SetParam(ctx, model.ParamProvider, "deepseek"))
	got, err = l.Param(ctx, model.ParamProvider, "openai")
	require.NoError(t, err)
	assert.Equal(t, "deepseek", got, "store beats config file")

	src, err := l.Source(ctx, model.ParamProvider)
	require.NoError(t, err)
	assert.Equal(t, "store", src)

	got, err = l.Param(ctx, model.ParamDeepSeekModel, "deepseek-chat")
	require.NoError(t, err)
	assert.Equal(t, "deepseek-chat", got)

	src, err = l.Source(ctx, model.ParamDeepSeekModel)
	require.NoError(t, err)
	assert.Equal(t, "default", src)
}

func TestLayeredBlankStoreValueFallsThrough(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	require.NoError(t, s.SetParam(ctx, model.ParamGeminiModel, "  "))

	l := config.NewLayered(s, nil, nil)
	got, err := l.Param(ctx, model.ParamGeminiModel, "models/gemini-flash-latest")
	require.NoError(t, err)
	assert.Equal(t, "models/gemini-flash-latest", got)

	secret, err := l.Secret(model.ParamGeminiKey)
	require.NoError(t, err)
	assert.Empty(t, secret)
}

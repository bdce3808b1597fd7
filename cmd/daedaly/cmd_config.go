package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/daedaly/internal/model"
	"github.com/nhle/daedaly/internal/setup"
	"github.com/nhle/daedaly/internal/theme"
)

func (c *cli) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write AI parameters",
		Long: `AI parameters are read from the parameter table first, then from the
"ai" section of the config file (or DAEDALY_<KEY> environment variables),
then fall back to built-in defaults. API keys may live in the OS keyring.`,
	}

	var reveal bool
	get := &cobra.Command{
		Use:   "get [key]",
		Short: "Show effective parameter values and where they come from",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := model.AIParamKeys
			if len(args) == 1 {
				key, err := paramKey(args[0])
				if err != nil {
					return err
				}
				keys = []string{key}
			}
			out := cmd.OutOrStdout()
			for _, key := range keys {
				value, source, err := c.effective(cmd, key)
				if err != nil {
					return err
				}
				if isSecretKey(key) && !reveal {
					value = mask(value)
				}
				fmt.Fprintf(out, "%s = %s %s\n", theme.KeyStyle.Render(key), value,
					theme.MutedStyle.Render("("+source+")"))
			}
			return nil
		},
	}
	get.Flags().BoolVar(&reveal, "reveal", false, "print API keys in clear")

	var useKeyring bool
	set := &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Store a parameter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := paramKey(args[0])
			if err != nil {
				return err
			}
			value := strings.TrimSpace(args[1])
			if useKeyring {
				if !isSecretKey(key) {
					return fmt.Errorf("%s is not an API key", key)
				}
				if c.secrets == nil {
					return fmt.Errorf("no keyring available")
				}
				if err := c.secrets.Set(key, value); err != nil {
					return err
				}
				value = ""
			}
			if err := c.store.SetParam(cmd.Context(), key, value); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme.Status(model.NotificationSuccess, key+" saved."))
			return nil
		},
	}
	set.Flags().BoolVar(&useKeyring, "keyring", false, "store an API key in the OS keyring")

	unset := &cobra.Command{
		Use:   "unset [key]",
		Short: "Remove a parameter so the fallback applies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := paramKey(args[0])
			if err != nil {
				return err
			}
			if err := c.store.DeleteParam(cmd.Context(), key); err != nil {
				return err
			}
			if c.secrets != nil && isSecretKey(key) {
				if err := c.secrets.Delete(key); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme.Status(model.NotificationSuccess, key+" removed."))
			return nil
		},
	}

	setupCmd := &cobra.Command{
		Use:   "setup",
		Short: "Configure the AI provider interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := setup.Load(cmd.Context(), c.params)
			if err != nil {
				return err
			}
			v.UseKeyring = c.secrets != nil
			if err := v.Form().RunWithContext(cmd.Context()); err != nil {
				return err
			}
			var secrets setup.SecretWriter
			if c.secrets != nil {
				secrets = c.secrets
			}
			if err := setup.Save(cmd.Context(), c.store, secrets, v); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.gateway().Probe(cmd.Context()))
			return nil
		},
	}

	cmd.AddCommand(get, set, unset, setupCmd)
	return cmd
}

// effective returns the value of key and the layer providing it.
func (c *cli) effective(cmd *cobra.Command, key string) (string, string, error) {
	ctx := cmd.Context()
	value, err := c.params.Param(ctx, key, "")
	if err != nil {
		return "", "", err
	}
	source, err := c.params.Source(ctx, key)
	if err != nil {
		return "", "", err
	}
	if value == "" && isSecretKey(key) {
		secret, err := c.params.Secret(key)
		if err != nil {
			return "", "", err
		}
		if secret != "" {
			return secret, "keyring", nil
		}
	}
	return value, source, nil
}

// paramKey accepts a key with or without the "daedaly." prefix.
func paramKey(arg string) (string, error) {
	key := strings.TrimSpace(arg)
	if !strings.HasPrefix(key, model.ParamNamespace) {
		key = model.ParamNamespace + key
	}
	if !slices.Contains(model.AIParamKeys, key) {
		return "", fmt.Errorf("unknown parameter %q", arg)
	}
	return key, nil
}

func isSecretKey(key string) bool {
	return slices.Contains(model.SecretParamKeys, key)
}

// mask keeps the last four characters of a secret.
func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return strings.Repeat("*", 8) + s[len(s)-4:]
}

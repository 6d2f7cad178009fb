package config

import "github.com/urfave/cli/v3"

// GitHub holds GitHub webhook configuration
type GitHub struct {
	WebhookSecret string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "Shared secret for webhook signature verification",
			Required:    true,
			Destination: &c.WebhookSecret,
			Sources:     cli.EnvVars("DELIVLIB_GITHUB_WEBHOOK_SECRET"),
		},
	}
}

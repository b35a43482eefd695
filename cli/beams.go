package cli

import (
	stdErrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/devcheck/beams"
)

// BeamsCmd groups the Pusher Beams commands.
type BeamsCmd struct {
	Publish PublishCmd `cmd:"" help:"Publish a push notification to one or more interests."`
}

// PublishCmd sends one notification through the Beams publish API.
type PublishCmd struct {
	Instance  string        `help:"Beams instance id." env:"BEAMS_INSTANCE" placeholder:"ID"`
	Secret    string        `help:"Beams server secret key." env:"BEAMS_SECRET"`
	Interests []string      `help:"Interest to publish to (repeatable, overrides the payload)." name:"interest" short:"i"`
	Title     string        `help:"Notification title (overrides the payload)."`
	Body      string        `help:"Notification body (overrides the payload)."`
	Payload   string        `help:"YAML or JSON file with the full publish payload."`
	Timeout   time.Duration `help:"Request timeout (default 15s)."`
	BaseURL   string        `help:"Override the Beams API base URL." env:"BEAMS_BASE_URL" hidden:""`
	Confirm   bool          `help:"Ask for confirmation before publishing."`
}

func (cmd *PublishCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, reportTelemetry := startTelemetry(ctx, globals, "beams publish")
	defer reportTelemetry()

	client, err := beams.NewClient(cmd.config())
	if err != nil {
		printError(ctx.Stderr, err.Error())
		if stdErrors.Is(err, beams.ErrMissingSecret) {
			printInfof(ctx.Stderr, "Set it with: export %s=your_secret_here", beams.EnvSecret)
		}
		return NewCommandError(1)
	}

	payload, err := cmd.payload()
	if err != nil {
		printError(ctx.Stderr, err.Error())
		return NewCommandError(1)
	}

	if cmd.Confirm {
		confirmed, err := promptYesNo(fmt.Sprintf("Publish to %s?", strings.Join(payload.Interests, ", ")))
		if err != nil {
			return err
		}
		if !confirmed {
			printInfof(ctx.Stderr, "Publish cancelled")
			return nil
		}
	}

	resp, err := client.Publish(runCtx, payload)
	if resp != nil {
		_, _ = fmt.Fprintf(ctx.Stdout, "Status: %d\n", resp.StatusCode)
		_, _ = fmt.Fprintln(ctx.Stdout, resp.Pretty())
	}
	if err != nil {
		var statusErr *beams.StatusError
		if stdErrors.As(err, &statusErr) {
			printError(ctx.Stderr, statusErr.Error())
		} else {
			printError(ctx.Stderr, fmt.Sprintf("Request failed: %v", err))
		}
		return NewCommandError(1)
	}

	if id := resp.PublishID(); id != "" {
		printSuccess(ctx.Stderr, fmt.Sprintf("Published %s", pathStyle.Render(id)))
	}

	return nil
}

// config layers the flags over beams.DefaultConfig.
func (cmd *PublishCmd) config() beams.Config {
	config := beams.DefaultConfig()
	config.SecretKey = cmd.Secret
	config.BaseURL = cmd.BaseURL
	if cmd.Instance != "" {
		config.InstanceID = cmd.Instance
	}
	if cmd.Timeout > 0 {
		config.Timeout = cmd.Timeout
	}
	return config
}

func (cmd *PublishCmd) payload() (beams.Payload, error) {
	payload := beams.DefaultPayload()
	if cmd.Payload != "" {
		loaded, err := beams.LoadPayload(cmd.Payload)
		if err != nil {
			return beams.Payload{}, err
		}
		payload = loaded
	}

	if len(cmd.Interests) > 0 {
		payload.Interests = cmd.Interests
	}

	return payload.WithNotification(cmd.Title, cmd.Body), nil
}

package scorecard

import (
	"os"

	"github.com/sbmops/scorecard/pkg/reconciler"
	"github.com/sbmops/scorecard/pkg/roster"
)

// Option is a function that configures a Client.
type Option func(*config) error

type config struct {
	roster         *roster.Roster
	reconcilerOpts []reconciler.Option
}

// WithRoster configures the client to resolve against the given roster
// instead of the embedded one.
func WithRoster(r *roster.Roster) Option {
	return func(c *config) error {
		c.roster = r
		return nil
	}
}

// WithRosterDir loads the roster from a directory of YAML files,
// overriding the embedded roster. The directory follows the embedded
// layout: accounts.yaml plus optional synonyms.yaml and omissions.yaml.
func WithRosterDir(dir string) Option {
	return func(c *config) error {
		r, err := roster.LoadFS(os.DirFS(dir))
		if err != nil {
			return err
		}
		c.roster = r
		return nil
	}
}

// WithReconcilerOptions passes options through to the reconciler.
func WithReconcilerOptions(opts ...reconciler.Option) Option {
	return func(c *config) error {
		c.reconcilerOpts = append(c.reconcilerOpts, opts...)
		return nil
	}
}

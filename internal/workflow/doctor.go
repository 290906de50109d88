package workflow

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/deixis/ftpilot/internal/command"
	"github.com/deixis/ftpilot/internal/config"
	"github.com/deixis/ftpilot/internal/runner"
)

const versionTimeout = 30 * time.Second

var versionRe = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?(?:[-+][0-9A-Za-z.\-]+)?`)

// Check is the outcome of one doctor probe.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// Doctor verifies that the session's directories exist, that the runner is
// installed and that its version satisfies the configured minimum.
func (e *Engine) Doctor(ctx context.Context) []Check {
	s := e.Session
	var checks []Check
	for _, d := range []config.Dir{config.Strategies, config.Configs, config.Results} {
		c := Check{Name: d.String() + " directory", OK: true, Detail: dirPath(s, d)}
		if err := s.Require(d); err != nil {
			c.OK, c.Detail = false, err.Error()
		}
		checks = append(checks, c)
	}

	path, err := ResolveProgram(s.Program)
	if err != nil {
		return append(checks, Check{Name: "program", Detail: err.Error()})
	}
	checks = append(checks, Check{Name: "program", OK: true, Detail: path})

	r := e.Runner
	if r == nil {
		r = &runner.Runner{Workspace: s.Root, Timeout: versionTimeout, MaxOutput: 64 << 10}
	}
	res, err := r.Run(ctx, command.Spec{path, "--version"}, command.GeneralLabel)
	if err != nil || !res.Succeeded {
		detail := res.Output
		if err != nil {
			detail = err.Error()
		}
		return append(checks, Check{Name: "version", Detail: detail})
	}
	return append(checks, versionCheck(res.Output, s.MinVersion))
}

func versionCheck(output, minVersion string) Check {
	c := Check{Name: "version"}
	raw := versionRe.FindString(output)
	if raw == "" {
		c.Detail = fmt.Sprintf("no version in %q", output)
		return c
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		c.Detail = err.Error()
		return c
	}
	c.Detail = v.String()
	if minVersion == "" {
		c.OK = true
		return c
	}
	constraint, err := semver.NewConstraint(">= " + minVersion)
	if err != nil {
		c.Detail = fmt.Sprintf("invalid min_version %q: %v", minVersion, err)
		return c
	}
	c.OK = constraint.Check(v)
	if !c.OK {
		c.Detail = fmt.Sprintf("%s is older than %s", v, minVersion)
	}
	return c
}

func dirPath(s config.Session, d config.Dir) string {
	switch d {
	case config.Strategies:
		return s.StrategiesDir
	case config.Configs:
		return s.ConfigDir
	}
	return s.ResultsDir
}

package workflow

import (
	"os"
	"sort"
	"strings"

	"github.com/deixis/ftpilot/internal/config"
)

// Strategies returns the strategy names found in the strategies directory:
// file names with the strategy extension, without it, sorted.
func Strategies(s config.Session) ([]string, error) {
	files, err := list(s, config.Strategies, s.StrategiesDir, s.StrategyExt)
	if err != nil {
		return nil, err
	}
	for i, f := range files {
		files[i] = strings.TrimSuffix(f, s.StrategyExt)
	}
	return files, nil
}

// ConfigFiles returns the runner configuration files in the config directory, sorted.
func ConfigFiles(s config.Session) ([]string, error) {
	return list(s, config.Configs, s.ConfigDir, s.ConfigExt)
}

func list(s config.Session, d config.Dir, dir, ext string) ([]string, error) {
	if err := s.Require(d); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), ext) && !strings.HasPrefix(e.Name(), ".") {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

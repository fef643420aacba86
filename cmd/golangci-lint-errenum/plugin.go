// Package golangcilinterrenum registers the errenum analyzer as a
// golangci-lint module plugin. Build a custom binary that includes it with
//
//	golangci-lint custom
//
// and enable the "errenum" linter in .golangci.yml.
package golangcilinterrenum

import (
	"github.com/golangci/plugin-module-register/register"
	"golang.org/x/tools/go/analysis"

	"errenum-generator/pkg/errenumanalysis"
)

func init() {
	register.Plugin("errenum", New)
}

// Settings are the plugin settings accepted in .golangci.yml.
type Settings struct {
	// Config is the path of an errenum configuration file.
	Config string `json:"config"`
}

func New(settings any) (register.LinterPlugin, error) {
	s, err := register.DecodeSettings[Settings](settings)
	if err != nil {
		return nil, err
	}

	if s.Config != "" {
		if err := errenumanalysis.Analyzer.Flags.Set("config", s.Config); err != nil {
			return nil, err
		}
	}

	return ErrenumLinter{}, nil
}

type ErrenumLinter struct{}

func (ErrenumLinter) BuildAnalyzers() ([]*analysis.Analyzer, error) {
	return []*analysis.Analyzer{errenumanalysis.Analyzer}, nil
}

func (ErrenumLinter) GetLoadMode() string {
	return register.LoadModeTypesInfo
}

package config

import "fmt"

type question struct {
	prompt string
	dst    *string
}

// Setup collects the five config fields from the operator and persists them
// at path. The caller is expected to exit afterwards; watching only starts on
// the next run.
func Setup(p Prompter, path string) (*WatchConfig, error) {
	var cfg WatchConfig

	questions := []question{
		{"Enter the source folder path:", &cfg.SourceFolder},
		{"Enter the destination folder path:", &cfg.DestinationFolder},
		{"Enter the new file name:", &cfg.TargetFileName},
		{"Enter the file extension to watch (leave empty for any):", &cfg.ExtensionFilter},
		{"Enter the file to copy back on startup (leave empty to skip):", &cfg.StartupCopyFile},
	}

	for _, q := range questions {
		answer, err := p.Ask(q.prompt)
		if err != nil {
			return nil, fmt.Errorf("setup aborted: %w", err)
		}
		*q.dst = answer
	}

	if err := Save(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

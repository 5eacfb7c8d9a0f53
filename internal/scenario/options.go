package scenario

import (
	"github.com/wahlandcase/baklab/internal/config"
)

// Options controls what the generator writes into each scratch repository
type Options struct {
	Binary string

	Email string
	Name  string

	UserPaginateNever bool
	ExtraCommands     []string

	FileName      string
	FirstVersion  []byte
	SecondVersion []byte

	FirstMessage  string
	LongMessage   string
	SecondMessage string

	ScratchRoot   string
	ScratchPrefix string
	MaxAttempts   int
	KeepAll       bool
}

// OptionsFromConfig builds Options from the loaded configuration
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	first, second, err := cfg.ReadVersions()
	if err != nil {
		return Options{}, err
	}
	if len(first) == 0 {
		first = firstVersion
	}
	if len(second) == 0 {
		second = secondVersion
	}

	root, err := cfg.ScratchRoot()
	if err != nil {
		return Options{}, err
	}

	return Options{
		Binary:            cfg.JJ.Binary,
		Email:             cfg.Identity.Email,
		Name:              cfg.Identity.Name,
		UserPaginateNever: cfg.Setup.UserPaginateNever,
		ExtraCommands:     cfg.Setup.ExtraCommands,
		FileName:          cfg.Scenario.FileName,
		FirstVersion:      first,
		SecondVersion:     second,
		FirstMessage:      cfg.Messages.First,
		LongMessage:       cfg.Messages.Long,
		SecondMessage:     cfg.Messages.Second,
		ScratchRoot:       root,
		ScratchPrefix:     cfg.Scenario.ScratchPrefix,
		MaxAttempts:       cfg.Scenario.MaxAttempts,
		KeepAll:           cfg.Scenario.KeepAll,
	}, nil
}

package main

import (
	"fmt"
	"os"

	"github.com/juanjux/fakesendmail"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
	builtBy = ""
)

func main() {
	// The whole argument vector belongs to the real transport, so even
	// the version query comes in through the environment.
	if os.Getenv("SENDMAIL_VERSION") != "" {
		fmt.Fprintf(os.Stderr, buildVersion(version, commit, date, builtBy)+"\n")
		return
	}

	cfg, err := fakesendmail.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %s\n", err)
		os.Exit(1)
	}

	f := &fakesendmail.Filter{
		Config: cfg,
		Hooks:  selectHooks(cfg),
	}

	os.Exit(f.Process(os.Args[1:], os.Stdin))
}

func selectHooks(cfg *fakesendmail.Config) []fakesendmail.Hook {
	var hooks []fakesendmail.Hook

	switch cfg.Storage {
	case "mysql":
		hooks = append(hooks, &fakesendmail.HookMysql{})
	case "sqlite":
		hooks = append(hooks, &fakesendmail.HookSqlite{})
	case "file":
		hooks = append(hooks, &fakesendmail.HookFile{})
	}

	if os.Getenv("SLACK_CHANNEL") != "" {
		hooks = append(hooks, &fakesendmail.HookSlack{})
	}

	return hooks
}

func buildVersion(version, commit, date, builtBy string) string {
	var result = version
	if commit != "" {
		result = fmt.Sprintf("%s\ncommit: %s", result, commit)
	}
	if date != "" {
		result = fmt.Sprintf("%s\nbuilt at: %s", result, date)
	}
	if builtBy != "" {
		result = fmt.Sprintf("%s\nbuilt by: %s", result, builtBy)
	}
	return result
}

package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to the component catalog app! Let's configure it.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Catalog service.
	servicePrompt := promptui.Prompt{
		Label:    "Catalog service base URL (used by this server)",
		Default:  cfg.Service.ServerSideBaseURL,
		Validate: func(s string) error { return validateBaseURL("url", s) },
	}
	serviceURL, err := servicePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("service url: %w", err)
	}
	cfg.Service.ServerSideBaseURL = serviceURL

	clientPrompt := promptui.Prompt{
		Label:    "Catalog service base URL as seen by browsers",
		Default:  serviceURL,
		Validate: func(s string) error { return validateBaseURL("url", s) },
	}
	clientURL, err := clientPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("client service url: %w", err)
	}
	cfg.Service.ClientSideBaseURL = clientURL

	// 2. Listener.
	portPrompt := promptui.Prompt{
		Label:    "Port to listen on",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 3. Log format.
	formatPrompt := promptui.Select{
		Label: "Log format",
		Items: []string{
			"json (structured, for log shipping)",
			"text (human readable, for local use)",
		},
	}
	formatIdx, _, err := formatPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("log format: %w", err)
	}
	cfg.Log.Format = []LogFormat{LogFormatJSON, LogFormatText}[formatIdx]

	// 4. Re-click behaviour of the dependency graph.
	reclickPrompt := promptui.Select{
		Label: "Clicking the selected graph node again",
		Items: []string{"clears the selection", "keeps the selection"},
	}
	reclickIdx, _, err := reclickPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("graph selection: %w", err)
	}
	cfg.Graph.ReclickToggles = reclickIdx == 0

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}
	fmt.Printf("\nConfiguration saved to %s\n", path)

	return cfg, nil
}

func validatePort(s string) error {
	port, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port %d out of range", port)
	}
	return nil
}

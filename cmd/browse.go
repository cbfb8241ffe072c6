package main

import (
	"io"

	"golang-restaurant-explorer/internal/services"
	"golang-restaurant-explorer/internal/ui"
	"golang-restaurant-explorer/pkg/logging"
	"golang-restaurant-explorer/pkg/restaurantapi"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse restaurants in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}

		// the screen belongs to the TUI; logs go to a file only with --verbose
		logging.Configure(log.StandardLogger(), io.Discard, config.Log.Level, config.Log.Format)
		if verbose {
			f, err := tea.LogToFile("restaurant-explorer.log", "browse")
			if err != nil {
				return err
			}
			defer f.Close()
			logging.Configure(log.StandardLogger(), f, config.Log.Level, config.Log.Format)
		}

		client := restaurantapi.NewClient(config.API.BaseURL, config.API.Timeout)
		model := ui.NewBrowseModel(services.NewRestaurantService(client, nil), ui.BrowseOptions{
			InitialPageSize: config.View.InitialPageSize,
			PageStep:        config.View.PageStep,
			Cities:          config.View.Cities,
			ImageBaseURL:    config.API.BaseURL,
			PictureSize:     config.API.PictureSize,
			Timeout:         config.API.Timeout,
		})

		_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	},
}

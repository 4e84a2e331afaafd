package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ternarybob/dartview/internal/app"
	"github.com/ternarybob/dartview/internal/services/registry"
	"github.com/ternarybob/dartview/internal/storage/sqlite"
)

var (
	ingestXMLPath  string
	ingestDownload bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Rebuild the company directory from the OpenDART corp registry",
	Long: `Truncates and repopulates the companies table and its full-text index.

The registry is read from --xml (an extracted CORPCODE.xml) or, with --download,
fetched from the OpenDART corpCode.xml endpoint using the configured API key.`,
	Example: `  dartview ingest --xml corp.xml
  dartview ingest --download -c dartview.toml`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestXMLPath, "xml", "", "Path to corp registry XML")
	ingestCmd.Flags().BoolVar(&ingestDownload, "download", false, "Download the registry from OpenDART")
	ingestCmd.MarkFlagsMutuallyExclusive("xml", "download")
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestXMLPath == "" && !ingestDownload {
		return errors.New("either --xml or --download is required")
	}

	db, err := sqlite.CreateSQLiteDB(logger, &config.Storage.SQLite)
	if err != nil {
		return err
	}
	defer db.Close()

	service := registry.NewService(
		sqlite.NewCompanyLoader(db, logger),
		sqlite.NewCompanyStorage(db, logger),
		logger,
	)

	ctx := cmd.Context()

	var report *registry.Report
	if ingestDownload {
		client, err := app.NewOpenDARTClient(config, logger)
		if err != nil {
			return err
		}
		report, err = service.IngestRemote(ctx, client)
		if err != nil {
			return err
		}
	} else {
		report, err = service.IngestFile(ctx, ingestXMLPath)
		if err != nil {
			return err
		}
	}

	fmt.Printf("Parsed %d companies, inserted %d\n", report.Parsed, report.Inserted)
	fmt.Printf("Directory now holds %d companies (%d listed) at %s\n", report.Total, report.Listed, config.Storage.SQLite.Path)
	return nil
}

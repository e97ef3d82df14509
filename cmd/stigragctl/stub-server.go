package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/config"
	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/stigdata"
	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/stubserver"
)

// stubServerCmd represents the stub-server command
var stubServerCmd = &cobra.Command{
	Use:   "stub-server",
	Short: "Run a stub STIG RAG service",
	Long: `Run a stub service exposing the same HTTP API as the real deployment.

The stub answers from keyword matching over an in-memory control store.
It exists to validate deployment tooling, health checks, and client
integrations without a model backend.

Example:
  stigragctl stub-server
  stigragctl stub-server --port 8080 --no-samples`,
	Run: func(cmd *cobra.Command, args []string) {
		bind, _ := cmd.Flags().GetString("bind")
		port, _ := cmd.Flags().GetInt("port")
		noSamples, _ := cmd.Flags().GetBool("no-samples")

		cfg := config.Get()
		if bind == "" {
			bind = cfg.BindAddress
		}
		if port == 0 {
			port = cfg.Port
		}

		store := stubserver.NewStore()
		if !noSamples {
			for _, doc := range stigdata.SampleDocuments() {
				store.AddDocument(doc)
			}
			fmt.Printf("Preloaded %d sample controls\n", store.Len())
		}

		fmt.Printf("Stub service listening on %s:%d\n", bind, port)
		srv := stubserver.NewServer(store, bind, strconv.Itoa(port))
		log.Fatal(srv.Start())
	},
}

func init() {
	rootCmd.AddCommand(stubServerCmd)
	stubServerCmd.Flags().String("bind", "", "Bind address (default: configured bind address)")
	stubServerCmd.Flags().IntP("port", "p", 0, "Listen port (default: configured port)")
	stubServerCmd.Flags().Bool("no-samples", false, "Start with an empty control store")
}

package cli

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/civicteam/gateway-derive/internal/config"
	"github.com/civicteam/gateway-derive/internal/core/gatewayderive"
	"github.com/civicteam/gateway-derive/internal/server/api/jsonrpc"
	"github.com/civicteam/gateway-derive/internal/storage/database/pebble"
	"github.com/civicteam/gateway-derive/internal/storage/gatewayaccounts"
	gdsim "github.com/civicteam/gateway-derive/internal/testing/gatewayderive"
)

// serverCmd starts the JSON-RPC server that exposes the six gwderived
// entrypoints (spec.md §4.7) over HTTP.
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gwderived JSON-RPC server",
	Long: `Start the gwderived server, which loads or creates a derived-pass and
fee account store on disk and exposes initialize/issue/refresh/create_fee/
update_fee/remove_fee as JSON-RPC 2.0 methods over HTTP.`,
	Run: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.Run = runServer
}

func runServer(cmd *cobra.Command, args []string) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	programID := resolvePubkey(cfg.Program.ID, "program ID")
	gatewayProgramID := resolvePubkey(cfg.Program.GatewayProgramID, "gateway program ID")

	mgr := pebble.NewManager(cfg.Storage.Path)
	store, err := gatewayaccounts.Open(mgr, gatewayaccounts.Config{CacheSize: cfg.Storage.CacheSize})
	if err != nil {
		log.Fatalf("failed to open account store at %s: %v", cfg.Storage.Path, err)
	}

	// The Gateway program itself is out of scope for this repository;
	// gwderived only ever reaches it through the GatewayProgramClient/
	// GatewayVerifier interfaces. Absent a live cluster and a funded CPI
	// signer, this command runs against a local in-memory simulation of
	// that program instead of issuing real CPIs.
	gateway := gdsim.NewFakeGatewayProgram(gatewayProgramID, gdsim.NewMemoryAccountStore(), func() int64 {
		return time.Now().Unix()
	})

	engine := gatewayderive.NewEngine(&gatewayderive.Deps{
		ProgramID:        programID,
		SystemProgramID:  solana.SystemProgramID,
		GatewayProgramID: gatewayProgramID,
		Store:            store,
		Verifier:         gateway,
		Gateway:          gateway,
		Now:              func() int64 { return time.Now().Unix() },
	})

	handler := jsonrpc.NewHandler(engine)
	httpServer := jsonrpc.NewServer(handler)

	http.Handle("/", httpServer)
	http.Handle("/rpc", httpServer)
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","service":"gwderived"}`))
	})

	fmt.Printf("gwderived listening on %s\n", cfg.RPC.ListenAddr)
	fmt.Printf("  storage: %s\n", cfg.Storage.Path)
	if err := http.ListenAndServe(cfg.RPC.ListenAddr, nil); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func resolvePubkey(encoded, label string) solana.PublicKey {
	if encoded == "" {
		log.Fatalf("%s must be configured (program.id / program.gateway_program_id)", label)
	}
	key, err := solana.PublicKeyFromBase58(encoded)
	if err != nil {
		log.Fatalf("invalid %s %q: %v", label, encoded, err)
	}
	return key
}

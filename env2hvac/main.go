// Command env2hvac uploads a .env file into HashiCorp Vault, one KV v2
// secret per variable at <mount>/data/<app>/<env>/<key>. An envault
// overlay with BasePath "<app>/<env>" reads the same layout back at
// runtime.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"sort"

	"github.com/joho/godotenv"
	"github.com/presbrey/envault/dotenv"
	"github.com/presbrey/envault/vaultkv"
	"github.com/rs/zerolog"
)

var (
	flagConfig = flag.String("config", "", "Config file (YAML, TOML, or JSON)")
	flagFile   = flag.String("file", "", "Env file to upload (default $DOTENV or .env)")
	flagApp    = flag.String("app", "", "Application name")
	flagEnv    = flag.String("env", "", "Environment name (e.g. staging, production)")

	flagAddr     = flag.String("addr", "", "Vault server address")
	flagToken    = flag.String("token", "", "Vault token")
	flagMount    = flag.String("mount", "", "KV v2 mount point (default secret)")
	flagCACert   = flag.String("ca-cert", "", "CA certificate file for TLS verification")
	flagInsecure = flag.Bool("insecure", false, "Skip TLS certificate verification")

	flagDryRun  = flag.Bool("dry-run", false, "Parse the env file without writing to Vault")
	flagStrict  = flag.Bool("strict", false, "Fail on malformed env file lines instead of skipping them")
	flagVerbose = flag.Bool("verbose", false, "Log Vault client activity")
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Failed to load environment variables: %v", err)
	}
	flag.Parse()

	if *flagConfig != "" {
		cfg, err := LoadConfig(*flagConfig)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
		applyConfig(cfg)
	}

	// Use environment variables if flags are not provided
	if *flagApp == "" {
		*flagApp = os.Getenv("E2H_APP")
	}
	if *flagEnv == "" {
		*flagEnv = os.Getenv("E2H_ENV")
	}
	if *flagApp == "" || *flagEnv == "" {
		log.Fatal("Application and environment names are required")
	}

	file := *flagFile
	if file == "" {
		file = os.Getenv("DOTENV")
	}
	if file == "" {
		file = ".env"
	}

	entries, err := dotenv.ParseFile(file)
	if err != nil {
		if *flagStrict {
			log.Fatalf("Error parsing %s: %v", file, err)
		}
		log.Printf("Warning: skipping malformed lines in %s: %v", file, err)
	}

	data := dotenv.Map(entries)
	if len(data) == 0 {
		log.Fatalf("No variables found in %s", file)
	}

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	base := *flagApp + "/" + *flagEnv

	if *flagDryRun {
		for _, key := range keys {
			log.Printf("DRY RUN: Would write %s/%s", base, key)
		}
		log.Printf("DRY RUN complete: %d variables for %s", len(keys), base)
		return
	}

	logger := zerolog.Nop()
	if *flagVerbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	client, err := vaultkv.New(vaultkv.Config{
		Address:  *flagAddr,
		Token:    *flagToken,
		CACert:   *flagCACert,
		Insecure: *flagInsecure,
		Mount:    *flagMount,
		Logger:   logger,
	})
	if err != nil {
		log.Fatalf("Error connecting to Vault: %v", err)
	}

	ctx := context.Background()
	successCount := 0
	failCount := 0
	for _, key := range keys {
		secret := map[string]string{key: data[key]}
		if err := client.Put(ctx, base+"/"+key, secret); err != nil {
			log.Printf("Error writing %s/%s: %v", base, key, err)
			failCount++
			continue
		}
		successCount++
	}

	log.Printf("Import complete: %d successful, %d failed", successCount, failCount)
	if failCount > 0 {
		os.Exit(1)
	}
}

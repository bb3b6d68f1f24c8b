// Command leafmint operates compressed-NFT leaf registries from the
// shell: it keeps the records and the reference trees in one bbolt
// file and runs registry operations against them. The acting principal
// is supplied as a flag, signature verification is the host's problem.
package main

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/leafmint/leafmint-go/kv"
	"github.com/leafmint/leafmint-go/tree/cmt"
	"github.com/leafmint/leafmint-go/txsystem/cnft"
	"github.com/leafmint/leafmint-go/types"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	return newApp().Run(args)
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "leafmint",
		Usage: "operate compressed-NFT leaf registries",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Usage:   "path of the registry database",
				Value:   "leafmint.db",
				EnvVars: []string{"LEAFMINT_DB"},
			},
			&cli.StringFlag{
				Name:    "signer",
				Usage:   "acting principal, 0x-prefixed 32 byte hex",
				EnvVars: []string{"LEAFMINT_SIGNER"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log every operation to stderr",
			},
		},
		Commands: []*cli.Command{
			createTreeCommand(),
			approveCommand(),
			mintCommand(),
			transferCommand(),
			burnCommand(),
			showCommand(),
		},
	}
}

// registry bundles the open database, the restored tree engine and the
// processor for the duration of one command.
type registry struct {
	db     kv.DB
	forest *cmt.Forest
	proc   *cnft.Processor
}

func openRegistry(c *cli.Context) (*registry, error) {
	log := zerolog.Nop()
	if c.Bool("verbose") {
		log = zerolog.New(zerolog.ConsoleWriter{Out: c.App.ErrWriter}).With().Timestamp().Logger()
	}
	db, err := kv.NewBoltDB(c.String("db"))
	if err != nil {
		return nil, err
	}
	forest := cmt.NewForest()
	if err := loadSnapshots(db, forest); err != nil {
		_ = db.Close()
		return nil, err
	}
	proc, err := cnft.New(db, forest,
		cnft.WithLogger(log),
		cnft.WithAssetMinter(cnft.NewAssetBook()),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &registry{db: db, forest: forest, proc: proc}, nil
}

func (r *registry) Close() error {
	return r.db.Close()
}

func signerOf(c *cli.Context) (types.Address, error) {
	s := c.String("signer")
	if s == "" {
		return types.Address{}, fmt.Errorf("--signer is required")
	}
	signer, err := types.ParseAddress(s)
	if err != nil {
		return types.Address{}, fmt.Errorf("invalid signer: %w", err)
	}
	return signer, nil
}

func addressFlag(c *cli.Context, name string) (types.Address, error) {
	addr, err := types.ParseAddress(c.String(name))
	if err != nil {
		return types.Address{}, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return addr, nil
}

// optionalAddressFlag returns the zero address when the flag is unset.
func optionalAddressFlag(c *cli.Context, name string) (types.Address, error) {
	if c.String(name) == "" {
		return types.Address{}, nil
	}
	return addressFlag(c, name)
}

func randomAddress() (types.Address, error) {
	var a types.Address
	if _, err := rand.Read(a[:]); err != nil {
		return a, fmt.Errorf("generating address: %w", err)
	}
	return a, nil
}

func printJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

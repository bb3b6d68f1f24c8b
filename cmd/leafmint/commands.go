package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/leafmint/leafmint-go/leaf"
	"github.com/leafmint/leafmint-go/metadata"
	"github.com/leafmint/leafmint-go/txsystem/cnft"
	"github.com/leafmint/leafmint-go/types/hex"
)

func createTreeCommand() *cli.Command {
	return &cli.Command{
		Name:  "create-tree",
		Usage: "create a commitment tree under a fresh address",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:    "depth",
				Usage:   "tree depth, capacity is 2^depth",
				Value:   14,
				EnvVars: []string{"LEAFMINT_DEPTH"},
			},
		},
		Action: func(c *cli.Context) error {
			signer, err := signerOf(c)
			if err != nil {
				return err
			}
			reg, err := openRegistry(c)
			if err != nil {
				return err
			}
			defer reg.Close()

			tree, err := randomAddress()
			if err != nil {
				return err
			}
			cfg, err := reg.proc.CreateTree(signer, &cnft.CreateTreeParams{
				Tree:  tree,
				Depth: uint32(c.Uint("depth")),
			})
			if err != nil {
				return err
			}
			if err := saveSnapshot(reg.db, reg.forest, tree); err != nil {
				return err
			}
			return printJSON(c, map[string]any{"tree": tree, "config": cfg})
		},
	}
}

func approveCommand() *cli.Command {
	return &cli.Command{
		Name:  "approve",
		Usage: "raise an authority's approved mint count",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "tree", Usage: "tree address", Required: true},
			&cli.StringFlag{Name: "authority", Usage: "principal the approval is granted to", Required: true},
			&cli.Uint64Flag{Name: "delta", Usage: "number of additional mints", Value: 1},
		},
		Action: func(c *cli.Context) error {
			signer, err := signerOf(c)
			if err != nil {
				return err
			}
			tree, err := addressFlag(c, "tree")
			if err != nil {
				return err
			}
			authority, err := addressFlag(c, "authority")
			if err != nil {
				return err
			}
			reg, err := openRegistry(c)
			if err != nil {
				return err
			}
			defer reg.Close()

			req, err := reg.proc.ApproveMintRequest(signer, &cnft.ApproveMintRequestParams{
				Tree:      tree,
				Authority: authority,
				Delta:     c.Uint64("delta"),
			})
			if err != nil {
				return err
			}
			return printJSON(c, req)
		},
	}
}

func mintCommand() *cli.Command {
	return &cli.Command{
		Name:  "mint",
		Usage: "mint a leaf to a recipient, the signer as sole creator",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "tree", Usage: "tree address", Required: true},
			&cli.StringFlag{Name: "recipient", Usage: "owner of the new leaf", Required: true},
			&cli.StringFlag{Name: "delegate", Usage: "delegate of the new leaf, defaults to the recipient"},
			&cli.StringFlag{Name: "name", Usage: "asset name", Value: "Asset"},
			&cli.StringFlag{Name: "symbol", Usage: "asset symbol", Value: "AST"},
			&cli.StringFlag{Name: "uri", Usage: "metadata uri"},
			&cli.UintFlag{Name: "fee", Usage: "seller fee basis points"},
			&cli.BoolFlag{Name: "immutable", Usage: "freeze the metadata at mint"},
		},
		Action: func(c *cli.Context) error {
			signer, err := signerOf(c)
			if err != nil {
				return err
			}
			tree, err := addressFlag(c, "tree")
			if err != nil {
				return err
			}
			recipient, err := addressFlag(c, "recipient")
			if err != nil {
				return err
			}
			delegate, err := optionalAddressFlag(c, "delegate")
			if err != nil {
				return err
			}
			reg, err := openRegistry(c)
			if err != nil {
				return err
			}
			defer reg.Close()

			res, err := reg.proc.Mint(signer, &cnft.MintParams{
				Tree:      tree,
				Recipient: recipient,
				Delegate:  delegate,
				Args: &metadata.MetadataArgs{
					Name:                 c.String("name"),
					Symbol:               c.String("symbol"),
					URI:                  c.String("uri"),
					SellerFeeBasisPoints: uint16(c.Uint("fee")),
					IsMutable:            !c.Bool("immutable"),
					TokenProgramVersion:  metadata.TokenProgramVersionOriginal,
					Creators: []metadata.Creator{
						{Address: signer, Verified: true, Share: 100},
					},
				},
			})
			if err != nil {
				return err
			}
			if err := saveSnapshot(reg.db, reg.forest, tree); err != nil {
				return err
			}
			return printJSON(c, res)
		},
	}
}

func transferCommand() *cli.Command {
	return &cli.Command{
		Name:  "transfer",
		Usage: "hand a leaf to a new owner",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "tree", Usage: "tree address", Required: true},
			&cli.Uint64Flag{Name: "index", Usage: "position of the leaf", Required: true},
			&cli.StringFlag{Name: "leaf", Usage: "current leaf contents as printed by mint", Required: true},
			&cli.StringFlag{Name: "new-owner", Usage: "principal receiving the leaf", Required: true},
		},
		Action: func(c *cli.Context) error {
			signer, err := signerOf(c)
			if err != nil {
				return err
			}
			tree, err := addressFlag(c, "tree")
			if err != nil {
				return err
			}
			newOwner, err := addressFlag(c, "new-owner")
			if err != nil {
				return err
			}
			l, err := parseLeaf(c.String("leaf"))
			if err != nil {
				return err
			}
			reg, err := openRegistry(c)
			if err != nil {
				return err
			}
			defer reg.Close()

			index := c.Uint64("index")
			proof, err := reg.forest.Prove(tree, index)
			if err != nil {
				return err
			}
			res, err := reg.proc.Transfer(signer, &cnft.TransferParams{
				Tree:     tree,
				Index:    index,
				Leaf:     l,
				NewOwner: newOwner,
				Proof:    proof,
			})
			if err != nil {
				return err
			}
			if err := saveSnapshot(reg.db, reg.forest, tree); err != nil {
				return err
			}
			return printJSON(c, res)
		},
	}
}

func burnCommand() *cli.Command {
	return &cli.Command{
		Name:  "burn",
		Usage: "permanently empty a leaf's position",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "tree", Usage: "tree address", Required: true},
			&cli.Uint64Flag{Name: "index", Usage: "position of the leaf", Required: true},
			&cli.StringFlag{Name: "leaf", Usage: "current leaf contents as printed by mint", Required: true},
		},
		Action: func(c *cli.Context) error {
			signer, err := signerOf(c)
			if err != nil {
				return err
			}
			tree, err := addressFlag(c, "tree")
			if err != nil {
				return err
			}
			l, err := parseLeaf(c.String("leaf"))
			if err != nil {
				return err
			}
			reg, err := openRegistry(c)
			if err != nil {
				return err
			}
			defer reg.Close()

			index := c.Uint64("index")
			proof, err := reg.forest.Prove(tree, index)
			if err != nil {
				return err
			}
			root, err := reg.proc.Burn(signer, &cnft.BurnParams{
				Tree:  tree,
				Index: index,
				Leaf:  l,
				Proof: proof,
			})
			if err != nil {
				return err
			}
			if err := saveSnapshot(reg.db, reg.forest, tree); err != nil {
				return err
			}
			return printJSON(c, map[string]any{"root": root})
		},
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "print a tree's record and current root",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "tree", Usage: "tree address", Required: true},
		},
		Action: func(c *cli.Context) error {
			tree, err := addressFlag(c, "tree")
			if err != nil {
				return err
			}
			reg, err := openRegistry(c)
			if err != nil {
				return err
			}
			defer reg.Close()

			cfg, err := reg.proc.GetTreeConfig(tree)
			if err != nil {
				return err
			}
			root, err := reg.forest.Root(tree)
			if err != nil {
				return err
			}
			return printJSON(c, map[string]any{"tree": tree, "config": cfg, "root": hex.Bytes(root)})
		},
	}
}

func parseLeaf(src string) (*leaf.Schema, error) {
	l := &leaf.Schema{}
	if err := json.Unmarshal([]byte(src), l); err != nil {
		return nil, fmt.Errorf("parsing leaf: %w", err)
	}
	if err := l.IsValid(); err != nil {
		return nil, fmt.Errorf("parsing leaf: %w", err)
	}
	return l, nil
}

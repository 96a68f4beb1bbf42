package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/moratsam/gfmat/erasure"
	"github.com/moratsam/gfmat/gf"
	"github.com/moratsam/gfmat/matrix"
	"github.com/moratsam/gfmat/shamir"
)

const (
	defaultParity = 3
	defaultData   = 7
)

func newEncodeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode <file>",
		Short: "Split a file into n data and k parity shards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := erasure.NewManager(a.logger.Named("erasure"), a.cfg.erasure.k, a.cfg.erasure.n)
			if err != nil {
				return err
			}
			paths, err := m.EncodeFile(args[0], a.cfg.erasure.outDir)
			if err != nil {
				return errors.Wrap(err, "encoding file")
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&a.cfg.erasure.k, "parity", "k", defaultParity, "Number of parity shards")
	cmd.Flags().IntVarP(&a.cfg.erasure.n, "data", "n", defaultData, "Number of data shards")
	cmd.Flags().StringVar(&a.cfg.erasure.outDir, "out-dir", "", "Directory for the shards (default: next to the input)")
	return cmd
}

func newDecodeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <shard>...",
		Short: "Reconstruct a file from any n of its shards",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.erasure.out == "" {
				return errors.New("missing --out path")
			}
			m, err := erasure.NewManager(a.logger.Named("erasure"), a.cfg.erasure.k, a.cfg.erasure.n)
			if err != nil {
				return err
			}
			return errors.Wrap(m.DecodeFiles(args, a.cfg.erasure.out), "decoding shards")
		},
	}
	cmd.Flags().IntVarP(&a.cfg.erasure.k, "parity", "k", defaultParity, "Number of parity shards")
	cmd.Flags().IntVarP(&a.cfg.erasure.n, "data", "n", defaultData, "Number of data shards")
	cmd.Flags().StringVarP(&a.cfg.erasure.out, "out", "o", "", "Output file path")
	return cmd
}

// parseRow reads a row written as hex bytes, optionally separated by spaces
// or commas: "02 01", "02,01" and "0201" are the same row.
func parseRow(s string) ([]byte, error) {
	s = strings.NewReplacer(" ", "", ",", "").Replace(s)
	row, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing row %q", s)
	}
	return row, nil
}

func newInvertCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invert <row>...",
		Short: "Invert a square matrix given as rows of hex bytes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := matrix.New(0, 0)
			for _, arg := range args {
				row, err := parseRow(arg)
				if err != nil {
					return err
				}
				if err := m.AppendRow(row); err != nil {
					return err
				}
			}

			invert := matrix.Invert
			if a.cfg.pivot {
				invert = matrix.InvertPivoted
			}
			inv, err := invert(m)
			if err != nil {
				return err
			}
			return inv.Fprint(cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&a.cfg.pivot, "pivot", false, "Swap rows when a pivot is zero")
	return cmd
}

func newSplitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split <secret>",
		Short: "Split a secret into n shares, any k of which recover it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := shamir.NewManager(a.logger.Named("shamir"), a.cfg.shamir.k, a.cfg.shamir.n)
			if err != nil {
				return err
			}
			shares, err := m.Split([]byte(args[0]))
			if err != nil {
				return err
			}
			for _, s := range shares {
				fmt.Fprintf(cmd.OutOrStdout(), "%d:%s\n", s.X, hex.EncodeToString(s.Y))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&a.cfg.shamir.k, "threshold", "k", 3, "Shares needed to recover the secret")
	cmd.Flags().IntVarP(&a.cfg.shamir.n, "shares", "n", 5, "Number of shares")
	return cmd
}

// parseShare reads a share written as "x:hex".
func parseShare(s string) (shamir.Share, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return shamir.Share{}, errors.Errorf("share %q is not x:hex", s)
	}
	x, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil {
		return shamir.Share{}, errors.Wrapf(err, "parsing x of share %q", s)
	}
	y, err := hex.DecodeString(parts[1])
	if err != nil {
		return shamir.Share{}, errors.Wrapf(err, "parsing y of share %q", s)
	}
	return shamir.Share{X: byte(x), Y: y}, nil
}

func newCombineCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "combine <x:hex>...",
		Short: "Recover a secret from its shares",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shares := make([]shamir.Share, len(args))
			for i, arg := range args {
				s, err := parseShare(arg)
				if err != nil {
					return err
				}
				shares[i] = s
			}

			m, err := shamir.NewManager(a.logger.Named("shamir"), len(shares), gf.Order-1)
			if err != nil {
				return err
			}
			secret, err := m.Combine(shares)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(secret))
			return nil
		},
	}
}

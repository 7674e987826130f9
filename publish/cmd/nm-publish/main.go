package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"

	"github.com/nearmint/protocol/publish"
	"github.com/nearmint/protocol/publish/contracts/nearmintnft"
)

type report struct {
	Contract string                      `json:"contract"`
	Owner    string                      `json:"owner"`
	Fields   map[string]publish.Calldata `json:"fields"`
	Calldata publish.Calldata            `json:"calldata"`
	Command  string                      `json:"command,omitempty"`
	Args     []string                    `json:"args,omitempty"`
}

type decodeReport struct {
	Values []string `json:"values"`
}

var fieldLabels = map[string]string{
	nearmintnft.FieldName:    "Name",
	nearmintnft.FieldSymbol:  "Symbol",
	nearmintnft.FieldBaseURI: "Base URI",
}

func main() {
	defer klog.Flush()

	root := newRootCmd()
	klog.InitFlags(nil)
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	if err := root.Execute(); err != nil {
		exitErr(err)
	}
}

func newRootCmd() *cobra.Command {
	cfg := defaultConfig()

	root := &cobra.Command{
		Use:   "nm-publish",
		Short: "Build NearMintNFT constructor calldata for Starknet deployment",
		Long: `nm-publish encodes the NearMintNFT constructor arguments as Cairo calldata
and prints the deploy command for it.

Examples:
  nm-publish calldata
  nm-publish command --token-symbol NMX -o json
  nm-publish decode --skip 1 0x02c6...5bfb 0 0x4e6561724d696e744e4654 11`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "output format: text|json|yaml")

	calldataCmd := &cobra.Command{
		Use:   "calldata",
		Short: "Print the encoded constructor calldata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.resolve(cmd); err != nil {
				return err
			}
			return runCalldata(cmd.OutOrStdout(), cfg, false)
		},
	}
	commandCmd := &cobra.Command{
		Use:   "command",
		Short: "Print the deploy command with the encoded constructor calldata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.resolve(cmd); err != nil {
				return err
			}
			return runCalldata(cmd.OutOrStdout(), cfg, true)
		},
	}
	for _, c := range []*cobra.Command{calldataCmd, commandCmd} {
		cfg.bindFlags(c)
	}

	var skip int
	decodeCmd := &cobra.Command{
		Use:   "decode <token>...",
		Short: "Decode consecutive ByteArray calldata back into text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd.OutOrStdout(), cfg.Output, args, skip)
		},
	}
	decodeCmd.Flags().IntVar(&skip, "skip", 0, "number of leading tokens to skip (e.g. 1 for the owner)")

	root.AddCommand(calldataCmd, commandCmd, decodeCmd)
	return root
}

func runCalldata(w io.Writer, cfg *config, withCommand bool) error {
	args := cfg.constructorArgs()

	fields, err := nearmintnft.EncodeFields(args)
	if err != nil {
		return err
	}
	for _, field := range nearmintnft.Fields() {
		klog.V(2).Infof("Encoded %s: %s full words, pending length %s", field, fields[field][0], fields[field][len(fields[field])-1])
	}

	calldata, err := nearmintnft.EncodeConstructor(args)
	if err != nil {
		return err
	}

	out := report{
		Contract: nearmintnft.Name(),
		Owner:    args.Owner,
		Fields:   fields,
		Calldata: calldata,
	}

	var deploy publish.DeployCommand
	if withCommand {
		deploy = publish.DeployCommand{
			Tool:      cfg.Tool,
			Account:   cfg.Account,
			Network:   cfg.Network,
			ClassHash: cfg.ClassHash,
			Calldata:  calldata,
		}
		if err := deploy.Validate(); err != nil {
			return err
		}
		out.Command = deploy.String()
		out.Args = deploy.Args()
	}

	if cfg.Output != "text" && cfg.Output != "" {
		return writeStructured(w, cfg.Output, out)
	}

	fmt.Fprintln(w, "=== Constructor calldata ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Owner: %s\n", args.Owner)
	fmt.Fprintln(w)
	for _, field := range nearmintnft.Fields() {
		fmt.Fprintf(w, "%s ByteArray: %s\n", fieldLabels[field], fields[field])
	}
	if !withCommand {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Calldata: %s\n", calldata)
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Deploy command ===")
	fmt.Fprintln(w)
	fmt.Fprintln(w, deploy.String())
	return nil
}

func runDecode(w io.Writer, output string, tokens []string, skip int) error {
	if skip < 0 || skip > len(tokens) {
		return fmt.Errorf("skip %d out of range for %d tokens", skip, len(tokens))
	}
	tokens = tokens[skip:]

	out := decodeReport{Values: []string{}}
	for offset := skip; len(tokens) > 0; {
		ba, n, err := publish.DecodeByteArray(tokens)
		if err != nil {
			return fmt.Errorf("token %d: %w", offset, err)
		}
		out.Values = append(out.Values, ba.String())
		tokens = tokens[n:]
		offset += n
	}

	switch output {
	case "text", "":
		for _, v := range out.Values {
			fmt.Fprintln(w, v)
		}
		return nil
	default:
		return writeStructured(w, output, out)
	}
}

func writeStructured(w io.Writer, output string, v any) error {
	var (
		blob []byte
		err  error
	)
	switch strings.ToLower(output) {
	case "json":
		blob, err = json.MarshalIndent(v, "", "  ")
	case "yaml":
		blob, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("unsupported output format: %s", output)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, strings.TrimRight(string(blob), "\n"))
	return err
}

func exitErr(err error) {
	var encErr *publish.EncodingError
	if errors.As(err, &encErr) {
		klog.V(2).Infof("Encoding failed at byte %d", encErr.Offset)
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

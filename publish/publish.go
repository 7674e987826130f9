package publish

import (
	"errors"
	"fmt"
	"strings"
)

const DefaultTool = "sncast"

type DeployCommand struct {
	Tool      string
	Account   string
	Network   string
	ClassHash string
	Calldata  Calldata
}

// ConstructorCalldata returns owner followed by the ByteArray encoding of each
// field, in order. The owner token is passed through untouched.
func ConstructorCalldata(owner string, fields ...string) (Calldata, error) {
	out := Calldata{owner}
	for i, field := range fields {
		encoded, err := EncodeByteArray(field)
		if err != nil {
			return nil, fmt.Errorf("field[%d]: %w", i, err)
		}
		out = append(out, encoded...)
	}
	return out, nil
}

func (c Calldata) String() string {
	return strings.Join(c, " ")
}

func (d DeployCommand) Validate() error {
	if d.Account == "" || d.Network == "" || d.ClassHash == "" {
		return errors.New("account, network and class-hash are required")
	}
	return nil
}

func (d DeployCommand) tool() string {
	if d.Tool == "" {
		return DefaultTool
	}
	return d.Tool
}

// Args returns the arguments passed to the deploy tool, without the tool name.
func (d DeployCommand) Args() []string {
	args := []string{
		"--account", d.Account,
		"deploy",
		"--network", d.Network,
		"--class-hash", d.ClassHash,
		"--constructor-calldata",
	}
	return append(args, d.Calldata...)
}

func (d DeployCommand) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s --account %s deploy \\\n", d.tool(), d.Account)
	fmt.Fprintf(&b, "  --network %s \\\n", d.Network)
	fmt.Fprintf(&b, "  --class-hash %s \\\n", d.ClassHash)
	fmt.Fprintf(&b, "  --constructor-calldata %s", d.Calldata)
	return b.String()
}

package nearmintnft

import (
	"fmt"

	"github.com/nearmint/protocol/publish"
)

const (
	name         = "NearMintNFT"
	version      = "0.1.0"
	license      = "MIT"
	cairoVersion = "2.8.2"
	ClassHash    = "0x079e3b828ae7e20ab6e7c545efbd38b22a8dc9af7c320d0f415d995d69bc9f9d"

	DefaultOwner   = "0x02c611a3ce30a9bd8eadff745bbed39ad01a8434cfa30cf4c27a5a07c29b5bfb"
	DefaultName    = "NearMintNFT"
	DefaultSymbol  = "NMNFT"
	DefaultBaseURI = "https://nearmint.io/metadata/"
)

// Field keys, in constructor order after the owner.
const (
	FieldName    = "name"
	FieldSymbol  = "symbol"
	FieldBaseURI = "base_uri"
)

type ConstructorArgs struct {
	Owner   string
	Name    string
	Symbol  string
	BaseURI string
}

func Name() string         { return name }
func Version() string      { return version }
func License() string      { return license }
func CairoVersion() string { return cairoVersion }

func DefaultConstructorArgs() ConstructorArgs {
	return ConstructorArgs{
		Owner:   DefaultOwner,
		Name:    DefaultName,
		Symbol:  DefaultSymbol,
		BaseURI: DefaultBaseURI,
	}
}

// Fields returns the ByteArray constructor parameters in calldata order.
func Fields() []string {
	return []string{FieldName, FieldSymbol, FieldBaseURI}
}

func (a ConstructorArgs) values() []string {
	return []string{a.Name, a.Symbol, a.BaseURI}
}

// EncodeConstructor returns constructor(owner, name, symbol, base_uri) calldata.
func EncodeConstructor(args ConstructorArgs) (publish.Calldata, error) {
	return publish.ConstructorCalldata(args.Owner, args.values()...)
}

func EncodeFields(args ConstructorArgs) (map[string]publish.Calldata, error) {
	out := make(map[string]publish.Calldata, 3)
	for i, field := range Fields() {
		encoded, err := publish.EncodeByteArray(args.values()[i])
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", field, err)
		}
		out[field] = encoded
	}
	return out, nil
}

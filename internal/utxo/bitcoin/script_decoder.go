package bitcoin

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
)

// AddressDecoder extracts destination addresses from a scriptpubkey using params of one network.
type AddressDecoder struct {
	params *chaincfg.Params
}

// NewAddressDecoder initializes a decoder for the provided network.
func NewAddressDecoder(network model.Network) (*AddressDecoder, error) {
	params, err := ChainParams(network)
	if err != nil {
		return nil, err
	}
	return &AddressDecoder{params: params}, nil
}

// Addresses decodes a hex scriptpubkey. Non-standard scripts yield no addresses and no error.
func (d *AddressDecoder) Addresses(scriptHex string) ([]string, error) {
	if scriptHex == "" {
		return nil, nil
	}

	scriptBytes, err := hex.DecodeString(scriptHex)
	if err != nil {
		return nil, fmt.Errorf("decode script hex: %w", err)
	}
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(scriptBytes, d.params)
	if err != nil {
		return nil, fmt.Errorf("extract addresses: %w", err)
	}

	result := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		result = append(result, addr.EncodeAddress())
	}
	return result, nil
}

// ChainParams maps a network name onto btcd chain parameters.
func ChainParams(network model.Network) (*chaincfg.Params, error) {
	switch strings.ToLower(string(network)) {
	case "main", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}

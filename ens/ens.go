package ens

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// FullName joins a label with the parent domain, e.g. "alice" -> "alice.bankrclub.eth".
func FullName(label string, domain string) string {
	return label + "." + domain
}

// NameHash implements the ENS namehash algorithm (EIP-137).
func NameHash(name string) common.Hash {
	node := common.Hash{}
	if name == "" {
		return node
	}
	labels := strings.Split(name, ".")
	for i := len(labels) - 1; i >= 0; i-- {
		labelHash := crypto.Keccak256Hash([]byte(labels[i]))
		node = crypto.Keccak256Hash(node.Bytes(), labelHash.Bytes())
	}
	return node
}

// LabelHash returns the keccak256 of a single label.
func LabelHash(label string) common.Hash {
	return crypto.Keccak256Hash([]byte(label))
}

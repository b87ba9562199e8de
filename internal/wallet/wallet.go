package wallet

import (
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	crypto "github.com/bsv-blockchain/go-sdk/primitives/hash"
	"github.com/bsv-blockchain/go-sdk/script"
)

// Wallet holds a secp256k1 private key and its derived P2PKH address.
type Wallet struct {
	PrivateKey *ec.PrivateKey
	PublicKey  []byte // 33-byte compressed public key
	address    string // Base58Check P2PKH address (mainnet)
	WIF        string
}

// Load creates a wallet from a WIF-encoded private key.
func Load(wif string) (*Wallet, error) {
	if wif == "" {
		return nil, fmt.Errorf("no wallet key provided")
	}

	privKey, err := ec.PrivateKeyFromWif(wif)
	if err != nil {
		return nil, fmt.Errorf("decode WIF: %w", err)
	}
	return fromKey(privKey, wif)
}

// Generate creates a new random wallet.
func Generate() (*Wallet, error) {
	privKey, err := ec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return fromKey(privKey, privKey.Wif())
}

func fromKey(privKey *ec.PrivateKey, wif string) (*Wallet, error) {
	addr, err := script.NewAddressFromPublicKey(privKey.PubKey(), true)
	if err != nil {
		return nil, fmt.Errorf("derive address: %w", err)
	}
	return &Wallet{
		PrivateKey: privKey,
		PublicKey:  privKey.PubKey().Compressed(),
		address:    addr.AddressString,
		WIF:        wif,
	}, nil
}

// Address returns the wallet's P2PKH address.
func (w *Wallet) Address() string { return w.address }

// Sign produces a DER-encoded ECDSA signature of the double-SHA256 hash of data.
func (w *Wallet) Sign(data []byte) ([]byte, error) {
	hash := crypto.Sha256d(data)
	sig, err := w.PrivateKey.Sign(hash)
	if err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}
	return sig.Serialize(), nil
}

// SignHash signs a pre-computed 32-byte hash.
func (w *Wallet) SignHash(hash [32]byte) ([]byte, error) {
	sig, err := w.PrivateKey.Sign(hash[:])
	if err != nil {
		return nil, fmt.Errorf("sign hash: %w", err)
	}
	return sig.Serialize(), nil
}

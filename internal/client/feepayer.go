package client

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// USDC on Base mainnet; the fee token unless configured otherwise.
const BaseUSDCAddress = "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"

// USDC uses 6 decimals, so 1.0 USDC is 1_000_000 units.
var DefaultFeeAmount = big.NewInt(1_000_000)

const erc20TransferABI = `[{"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"type":"function"}]`

// FeePayer executes the fee transfer that gates record generation and
// blocks until the transaction is confirmed.
type FeePayer interface {
	PayFee(ctx context.Context) (txHash string, err error)
}

// Signer is the connected wallet, reduced to what the orchestrator
// needs.
type Signer interface {
	Address() string
}

// KeySigner derives the wallet address from an ECDSA private key.
type KeySigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewKeySigner parses a hex-encoded private key, with or without the
// "0x" prefix.
func NewKeySigner(privateKeyHex string) (*KeySigner, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return &KeySigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

func (s *KeySigner) Address() string {
	return s.address.Hex()
}

// USDCFeePayer sends a fixed ERC-20 transfer to a fixed recipient and
// waits for the mined receipt.
type USDCFeePayer struct {
	eth       *ethclient.Client
	signer    *KeySigner
	token     common.Address
	recipient common.Address
	amount    *big.Int
	transfer  abi.ABI
}

// NewUSDCFeePayer dials rpcURL and prepares the transfer call.
// tokenAddress may be empty to use Base mainnet USDC; amount may be
// nil to charge the default 1 USDC.
func NewUSDCFeePayer(rpcURL string, signer *KeySigner, tokenAddress, recipientAddress string, amount *big.Int) (*USDCFeePayer, error) {
	if !common.IsHexAddress(recipientAddress) {
		return nil, fmt.Errorf("invalid fee recipient address: %s", recipientAddress)
	}
	if tokenAddress == "" {
		tokenAddress = BaseUSDCAddress
	}
	if !common.IsHexAddress(tokenAddress) {
		return nil, fmt.Errorf("invalid token address: %s", tokenAddress)
	}
	if amount == nil {
		amount = DefaultFeeAmount
	}

	eth, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rpc: %w", err)
	}

	parsed, err := abi.JSON(strings.NewReader(erc20TransferABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse erc20 abi: %w", err)
	}

	return &USDCFeePayer{
		eth:       eth,
		signer:    signer,
		token:     common.HexToAddress(tokenAddress),
		recipient: common.HexToAddress(recipientAddress),
		amount:    amount,
		transfer:  parsed,
	}, nil
}

// PayFee submits transfer(recipient, amount) and blocks until the
// transaction is mined. Returns the transaction hash on success.
func (p *USDCFeePayer) PayFee(ctx context.Context) (string, error) {
	data, err := p.transfer.Pack("transfer", p.recipient, p.amount)
	if err != nil {
		return "", fmt.Errorf("failed to pack transfer: %w", err)
	}

	chainID, err := p.eth.ChainID(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get chain id: %w", err)
	}

	from := p.signer.address
	nonce, err := p.eth.PendingNonceAt(ctx, from)
	if err != nil {
		return "", fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := p.eth.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get gas price: %w", err)
	}

	gasLimit, err := p.eth.EstimateGas(ctx, ethereum.CallMsg{
		From: from,
		To:   &p.token,
		Data: data,
	})
	if err != nil {
		return "", fmt.Errorf("failed to estimate gas: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &p.token,
		Value:    big.NewInt(0),
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), p.signer.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := p.eth.SendTransaction(ctx, signed); err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}

	receipt, err := bind.WaitMined(ctx, p.eth, signed)
	if err != nil {
		return "", fmt.Errorf("failed waiting for confirmation: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return "", fmt.Errorf("fee transfer reverted: %s", signed.Hash().Hex())
	}

	return signed.Hash().Hex(), nil
}

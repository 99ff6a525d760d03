// qrgen is the command-line front for the QR registry: it generates a
// payment QR record for a wallet or fetches an existing one, and
// writes the rendered PNG.
package main

import (
	"fmt"
	"os"

	"basepay/internal/client"
	"basepay/internal/config"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	config.LoadEnv()

	rootCmd := &cobra.Command{
		Use:     "qrgen",
		Short:   "Generate and fetch USDC payment QR codes",
		Version: Version,
	}

	rootCmd.PersistentFlags().String("api-url", config.GetEnv("API_URL", "http://localhost:3000"), "gateway base URL")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(fetchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Register a payment QR code for a website URL",
		RunE:  runGenerate,
	}

	cmd.Flags().String("key", config.GetEnv("WALLET_PRIVATE_KEY", ""), "hex private key of the wallet")
	cmd.Flags().String("url", "", "website URL the QR code is bound to")
	cmd.Flags().String("memo", "", "payment memo")
	cmd.Flags().String("amount", "", "optional USDC amount")
	cmd.Flags().StringP("out", "o", "", "write the QR PNG to this path")
	cmd.Flags().Bool("fee", false, "pay the generation fee on-chain first")
	cmd.Flags().String("rpc-url", config.GetEnv("RPC_URL", "https://mainnet.base.org"), "Ethereum RPC endpoint for the fee transfer")
	cmd.Flags().String("fee-recipient", config.GetEnv("ADMIN_WALLET_ADDRESS", ""), "fee recipient address")
	cmd.Flags().String("fee-token", "", "fee token contract (defaults to Base USDC)")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	keyHex, _ := cmd.Flags().GetString("key")
	if keyHex == "" {
		return fmt.Errorf("a wallet key is required (--key or WALLET_PRIVATE_KEY)")
	}
	signer, err := client.NewKeySigner(keyHex)
	if err != nil {
		return err
	}

	apiURL, _ := cmd.Flags().GetString("api-url")

	var feePayer client.FeePayer
	if feeGated, _ := cmd.Flags().GetBool("fee"); feeGated {
		rpcURL, _ := cmd.Flags().GetString("rpc-url")
		recipient, _ := cmd.Flags().GetString("fee-recipient")
		token, _ := cmd.Flags().GetString("fee-token")
		if recipient == "" {
			return fmt.Errorf("fee-gated generation needs --fee-recipient or ADMIN_WALLET_ADDRESS")
		}
		feePayer, err = client.NewUSDCFeePayer(rpcURL, signer, token, recipient, nil)
		if err != nil {
			return err
		}
	}

	websiteURL, _ := cmd.Flags().GetString("url")
	memo, _ := cmd.Flags().GetString("memo")
	amount, _ := cmd.Flags().GetString("amount")

	orch := client.NewOrchestrator(client.NewAPI(apiURL), signer, feePayer)
	result, err := orch.Generate(cmd.Context(), client.GenerateInput{
		WebsiteURL: websiteURL,
		Memo:       memo,
		Amount:     amount,
	})
	if err != nil {
		return err
	}

	return report(cmd, result)
}

func fetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch a previously generated QR code",
		RunE:  runFetch,
	}

	cmd.Flags().String("wallet", "", "wallet address (defaults to the address of --key)")
	cmd.Flags().String("key", config.GetEnv("WALLET_PRIVATE_KEY", ""), "hex private key of the wallet")
	cmd.Flags().String("url", "", "website URL the QR code is bound to")
	cmd.Flags().StringP("out", "o", "", "write the QR PNG to this path")

	return cmd
}

func runFetch(cmd *cobra.Command, args []string) error {
	apiURL, _ := cmd.Flags().GetString("api-url")
	wallet, _ := cmd.Flags().GetString("wallet")
	websiteURL, _ := cmd.Flags().GetString("url")

	var signer client.Signer
	if keyHex, _ := cmd.Flags().GetString("key"); keyHex != "" {
		ks, err := client.NewKeySigner(keyHex)
		if err != nil {
			return err
		}
		signer = ks
	}

	orch := client.NewOrchestrator(client.NewAPI(apiURL), signer, nil)
	result, err := orch.Fetch(cmd.Context(), wallet, websiteURL)
	if err != nil {
		return err
	}

	return report(cmd, result)
}

func report(cmd *cobra.Command, result *client.Result) error {
	rec := result.Record
	if result.Existing {
		fmt.Printf("Existing QR code for %s\n", rec.WebsiteURL)
	} else {
		fmt.Printf("QR code generated for %s\n", rec.WebsiteURL)
	}
	fmt.Printf("  %s USDC payment address: %s\n", rec.WebsiteName, rec.WalletAddress)
	if rec.Memo != "" {
		fmt.Printf("  memo: %s\n", rec.Memo)
	}
	if result.FeeTxHash != "" {
		fmt.Printf("  fee tx: %s\n", result.FeeTxHash)
	}

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := os.WriteFile(out, result.PNG, 0o644); err != nil {
			return fmt.Errorf("failed to write QR image: %w", err)
		}
		fmt.Printf("  saved: %s\n", out)
	}
	return nil
}

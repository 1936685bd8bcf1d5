// chaindexctl is the operator CLI: it queries a running chaindex server and
// submits createCollection/mint transactions to the dev chain. It never
// touches storage directly.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fr0stylo/chaindex/internal/chain"
	"github.com/fr0stylo/chaindex/internal/config"
	"github.com/fr0stylo/chaindex/internal/event"
	"github.com/fr0stylo/chaindex/pkg/queryclient"
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "chaindexctl",
		Short:         "Query the chaindex API and invoke the aggregator contract",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(quantityCommand(), getCommand(), createCollectionCommand(), mintCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func quantityCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "quantity <category>",
		Short: "Print the number of indexed events for a category.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, client, err := categoryAndClient(args[0])
			if err != nil {
				return err
			}
			body, err := client.Quantity(cmd.Context(), category.PathToken())
			if err != nil {
				return err
			}
			fmt.Println(body)
			return nil
		},
	}
}

func getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <category> <index>",
		Short: "Print the indexed event at the given sequence number.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, client, err := categoryAndClient(args[0])
			if err != nil {
				return err
			}
			index, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid index %q", args[1])
			}
			body, err := client.ByIndex(cmd.Context(), category.PathToken(), index)
			if err != nil {
				return err
			}
			fmt.Println(body)
			return nil
		},
	}
}

func createCollectionCommand() *cobra.Command {
	var abiPath string
	cmd := &cobra.Command{
		Use:   "create-collection <from> <contract> <name> <symbol>",
		Short: "Create a new NFT collection.",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseAddress(args[0], "from")
			if err != nil {
				return err
			}
			caller, err := dialCaller(cmd, abiPath, args[1])
			if err != nil {
				return err
			}
			defer caller.Close()
			return caller.CreateCollection(cmd.Context(), from, args[2], args[3])
		},
	}
	cmd.Flags().StringVar(&abiPath, "abi", "contract/build/contracts/CollectionAggregator.json", "Path to the aggregator contract ABI.")
	return cmd
}

func mintCommand() *cobra.Command {
	var abiPath string
	cmd := &cobra.Command{
		Use:   "mint <from> <contract> <collection> <recipient> <token-uri>",
		Short: "Mint an NFT into a collection.",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseAddress(args[0], "from")
			if err != nil {
				return err
			}
			collection, err := parseAddress(args[2], "collection")
			if err != nil {
				return err
			}
			recipient, err := parseAddress(args[3], "recipient")
			if err != nil {
				return err
			}
			caller, err := dialCaller(cmd, abiPath, args[1])
			if err != nil {
				return err
			}
			defer caller.Close()
			return caller.Mint(cmd.Context(), from, collection, recipient, args[4])
		},
	}
	cmd.Flags().StringVar(&abiPath, "abi", "contract/build/contracts/CollectionAggregator.json", "Path to the aggregator contract ABI.")
	return cmd
}

func categoryAndClient(token string) (event.Category, queryclient.Client, error) {
	category, ok := event.ParseCategory(token)
	if !ok {
		return 0, queryclient.Client{}, fmt.Errorf("unknown category %q (want collection_created or token_minted)", token)
	}
	cfg, err := config.Load()
	if err != nil {
		return 0, queryclient.Client{}, err
	}
	return category, queryclient.Client{Endpoint: cfg.Client.APIURL}, nil
}

func dialCaller(cmd *cobra.Command, abiPath, contract string) (*chain.Caller, error) {
	address, err := parseAddress(contract, "contract")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return chain.NewCaller(cmd.Context(), cfg.Chain.RPCURL, abiPath, address)
}

func parseAddress(value, name string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("invalid %s address %q", name, value)
	}
	return common.HexToAddress(value), nil
}

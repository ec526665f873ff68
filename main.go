package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"

	"github.com/xrpl-demos/batch-backend/batch"
	"github.com/xrpl-demos/batch-backend/client"
	"github.com/xrpl-demos/batch-backend/ledger"
	"github.com/xrpl-demos/batch-backend/wallet"
)

const (
	startingBalance = 100_000_000 // 100 XRP each
	paymentToBob    = 2_000_000
	paymentToCarol  = 3_000_000
	swapOffer       = 5_000_000
	tokenCode       = "DOGECOIN" // longer than 3 chars, hex-encoded on the wire
)

func main() {
	wlt, err := wallet.NewRAMWallet(rand.Reader)
	if err != nil {
		log.Fatal(err)
	}

	alice := wlt.NewAccount()
	bob := wlt.NewAccount()
	carol := wlt.NewAccount()

	led := ledger.NewInProcLedger()
	led.Fund(alice.Address(), startingBalance)
	led.Fund(bob.Address(), startingBalance)
	led.Fund(carol.Address(), startingBalance)

	aliceClient := client.NewBatchClient(alice, led)
	bobClient := client.NewBatchClient(bob, led)
	ctx := context.Background()

	printBalances(ctx, "before", aliceClient, bobClient)

	// Scenario 1: a single submitter batches two payments and a trust line
	// under AllOrNothing. One signing pass, combine is trivial.
	fmt.Println("--- single-submitter AllOrNothing batch ---")
	intents := []batch.Intent{
		aliceClient.Pay(bob.Address(), batch.DropsAmount(paymentToBob)),
		aliceClient.Pay(carol.Address(), batch.DropsAmount(paymentToCarol)),
		{
			Kind:    batch.KindTrustSet,
			Account: alice.Address(),
			Amount: batch.IssuedAmount{
				Currency: tokenCode,
				Issuer:   carol.Address().String(),
				Value:    "1000",
			},
		},
	}
	res, err := aliceClient.RunBatch(ctx, batch.AllOrNothing, intents)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("result:", res.ResultCode)
	fmt.Println("hash:  ", res.Hash)

	printBalances(ctx, "after batch", aliceClient, bobClient)

	// Scenario 2: a two-leg atomic swap. Alice and Bob sign independent deep
	// copies of the identical autofilled envelope; the combiner merges both
	// partial signatures, sorted by account.
	fmt.Println("--- two-party atomic swap ---")
	res, err = aliceClient.Swap(ctx, bob,
		batch.DropsAmount(swapOffer),
		batch.IssuedAmount{
			Currency: tokenCode,
			Issuer:   carol.Address().String(),
			Value:    "250",
		},
	)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("result:", res.ResultCode)
	fmt.Println("hash:  ", res.Hash)

	printBalances(ctx, "after swap", aliceClient, bobClient)
}

func printBalances(ctx context.Context, stage string, clients ...*client.BatchClient) {
	for _, c := range clients {
		bal, err := c.Balance(ctx)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s: %s holds %s\n", stage, c.Address(), client.FormatBalance(bal))
	}
}

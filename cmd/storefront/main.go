// Command storefront is an interactive terminal storefront. The cart lives
// entirely in this process; nothing is sent to the server until checkout,
// which records one sale per cart line.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/manucr/tienda-be/internal/cart"
	"github.com/manucr/tienda-be/internal/models"
	"github.com/manucr/tienda-be/internal/storefront"
)

func main() {
	apiURL := os.Getenv("TIENDA_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	client := storefront.New(apiURL)
	reader := bufio.NewReader(os.Stdin)
	ctx := context.Background()

	var catalog []models.Product
	var items []cart.Item

	fmt.Printf("tienda storefront — connected to %s\n", apiURL)
	fmt.Println(`type "help" for commands`)

	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "help":
			printHelp()
		case "register":
			username, password, err := promptCredentials(reader)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if err := client.Register(ctx, username, password); err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println("registered; you can now log in")
		case "login":
			username, password, err := promptCredentials(reader)
			if err != nil {
				fmt.Println(err)
				continue
			}
			userID, err := client.Login(ctx, username, password)
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Printf("logged in as %s (user %s)\n", username, userID)
		case "products":
			catalog, err = client.Products(ctx)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if len(catalog) == 0 {
				fmt.Println("no products yet")
				continue
			}
			for i, p := range catalog {
				fmt.Printf("%2d. %s — %.2f (%d in stock)\n", i+1, p.Name, p.Price, p.Quantity)
			}
		case "add":
			product, ok := pickProduct(catalog, fields)
			if !ok {
				continue
			}
			items = cart.Add(items, product)
			fmt.Printf("added %s\n", product.Name)
		case "remove":
			product, ok := pickProduct(catalog, fields)
			if !ok {
				continue
			}
			items = cart.Remove(items, product.ID.Hex())
			fmt.Printf("removed %s\n", product.Name)
		case "qty":
			if len(fields) != 3 {
				fmt.Println("usage: qty <product#> <quantity>")
				continue
			}
			product, ok := pickProduct(catalog, fields[:2])
			if !ok {
				continue
			}
			quantity, err := strconv.Atoi(fields[2])
			if err != nil || quantity < 1 {
				fmt.Println("quantity must be a positive integer")
				continue
			}
			items = cart.SetQuantity(items, product.ID.Hex(), quantity)
		case "cart":
			printCart(items)
		case "clear":
			items = cart.Clear()
			fmt.Println("cart cleared")
		case "checkout":
			if len(items) == 0 {
				fmt.Println("cart is empty")
				continue
			}
			if err := checkout(ctx, client, items); err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Printf("checked out %d items, total %.2f\n", cart.Count(items), cart.Total(items))
			items = cart.Clear()
		case "quit", "exit":
			return
		default:
			fmt.Printf("unknown command %q\n", fields[0])
		}
	}
}

func printHelp() {
	fmt.Println(`commands:
  register          create an account
  login             log in (token kept for this session)
  products          fetch and list the catalog
  add <product#>    add one unit of a listed product to the cart
  remove <product#> drop a product from the cart
  qty <product#> <n> set a cart line's quantity
  cart              show the cart
  clear             empty the cart
  checkout          record a sale per cart line, then empty the cart
  quit              leave`)
}

// promptCredentials reads a username and a no-echo password from the terminal.
func promptCredentials(reader *bufio.Reader) (string, string, error) {
	fmt.Print("username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return "", "", err
	}
	fmt.Print("password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", "", err
	}
	return strings.TrimSpace(username), string(password), nil
}

// pickProduct resolves a 1-based catalog index from the command arguments.
func pickProduct(catalog []models.Product, fields []string) (models.Product, bool) {
	if len(fields) < 2 {
		fmt.Println("usage:", fields[0], "<product#>")
		return models.Product{}, false
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 1 || n > len(catalog) {
		fmt.Println(`no such product; run "products" first`)
		return models.Product{}, false
	}
	return catalog[n-1], true
}

func printCart(items []cart.Item) {
	if len(items) == 0 {
		fmt.Println("cart is empty")
		return
	}
	for _, it := range items {
		fmt.Printf("  %s x%d — %.2f\n", it.Name, it.Quantity, it.Price*float64(it.Quantity))
	}
	fmt.Printf("total: %.2f (%d units)\n", cart.Total(items), cart.Count(items))
}

func checkout(ctx context.Context, client *storefront.Client, items []cart.Item) error {
	for _, it := range items {
		total := it.Price * float64(it.Quantity)
		if err := client.CreateSale(ctx, it.ProductID, it.Quantity, total); err != nil {
			return fmt.Errorf("checkout %s: %w", it.Name, err)
		}
		log.Printf("recorded sale: %s x%d", it.Name, it.Quantity)
	}
	return nil
}

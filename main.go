package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/snapsite-dev/storefront-client/admin"
	"github.com/snapsite-dev/storefront-client/api"
	"github.com/snapsite-dev/storefront-client/auth"
	"github.com/snapsite-dev/storefront-client/cart"
	"github.com/snapsite-dev/storefront-client/chat"
	"github.com/snapsite-dev/storefront-client/media"
	"github.com/snapsite-dev/storefront-client/models"
	"github.com/snapsite-dev/storefront-client/roster"
	"github.com/snapsite-dev/storefront-client/storage"
)

// app bundles everything a command needs.
type app struct {
	store    storage.Store
	cart     *cart.Cart
	guest    *auth.Guest
	tokens   *auth.TokenKeeper
	client   *api.Client
	uploader *media.Uploader
	interval time.Duration
}

func main() {
	// Load environment variables
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	store, err := storage.OpenLocal(storePath())
	if err != nil {
		log.Fatalf("❌ Failed to open local store: %v", err)
	}
	defer store.Close()

	tokens := auth.NewTokenKeeper(store)
	a := &app{
		store:    store,
		cart:     cart.New(store),
		guest:    auth.NewGuest(store),
		tokens:   tokens,
		client:   api.New(getEnv("API_URL", "http://localhost:5000"), tokens),
		uploader: media.NewUploader(os.Getenv("SUPABASE_URL"), os.Getenv("SUPABASE_PUBLIC_KEY")),
		interval: pollInterval(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "products":
		return a.listProducts(ctx)
	case "product":
		if len(args) < 1 {
			return fmt.Errorf("usage: product <productID>")
		}
		return a.showProduct(ctx, args[0])
	case "cart":
		return a.cartCommand(ctx, args)
	case "checkout":
		return a.checkout(ctx)
	case "login":
		if len(args) < 2 {
			return fmt.Errorf("usage: login <email> <password>")
		}
		return a.login(ctx, args[0], args[1])
	case "logout":
		return a.tokens.Clear()
	case "register":
		return a.register(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "forgot-password":
		if len(args) < 1 {
			return fmt.Errorf("usage: forgot-password <email>")
		}
		return a.forgotPassword(ctx, args[0])
	case "users":
		return a.listUsers(ctx)
	case "block":
		if len(args) < 1 {
			return fmt.Errorf("usage: block <email>")
		}
		if err := a.client.ToggleBlockUser(ctx, args[0]); err != nil {
			return err
		}
		log.Printf("✅ Toggled block for %s", args[0])
		return nil
	case "chat":
		return a.customerChat(ctx)
	case "admin-chat":
		return a.adminChat(ctx)
	case "export-products":
		path := "products.xlsx"
		if len(args) > 0 {
			path = args[0]
		}
		return a.exportProducts(ctx, path)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// -------- Catalog --------

func (a *app) listProducts(ctx context.Context) error {
	products, err := a.client.ListProducts(ctx)
	if err != nil {
		return err
	}
	for _, p := range products {
		fmt.Printf("%-12s %-30s USD %.2f (stock %d)\n", p.ProductID, p.Name, p.Price, p.Stock)
	}
	return nil
}

func (a *app) showProduct(ctx context.Context, productID string) error {
	p, err := a.client.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	fmt.Printf("%s — %s\n", p.ProductID, p.Name)
	if p.LabelledPrice > p.Price {
		fmt.Printf("USD %.2f (was %.2f)\n", p.Price, p.LabelledPrice)
	} else {
		fmt.Printf("USD %.2f\n", p.Price)
	}
	fmt.Println(p.Description)
	return nil
}

// -------- Cart --------

func (a *app) cartCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"show"}
	}

	switch args[0] {
	case "show":
		a.printCart()
		return nil
	case "total":
		fmt.Printf("Total: USD %.2f\n", a.cart.Total())
		return nil
	case "clear":
		a.cart.Clear()
		log.Println("✅ Cart cleared")
		return nil
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: cart add <productID> [quantity]")
		}
		quantity := 1
		if len(args) > 2 {
			n, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[2])
			}
			quantity = n
		}
		product, err := a.client.GetProduct(ctx, args[1])
		if err != nil {
			return err
		}
		a.cart.Add(product.ToCartLine(quantity), quantity)
		log.Println("✅ Added to cart")
		a.printCart()
		return nil
	case "remove":
		if len(args) < 2 {
			return fmt.Errorf("usage: cart remove <productID>")
		}
		a.cart.Remove(args[1])
		a.printCart()
		return nil
	default:
		return fmt.Errorf("usage: cart [show|add|remove|clear|total]")
	}
}

func (a *app) printCart() {
	lines := a.cart.Load()
	if len(lines) == 0 {
		fmt.Println("Your cart is empty.")
		return
	}
	for _, line := range lines {
		fmt.Printf("%-12s %-30s x%-3d USD %.2f\n", line.ProductID, line.Name, line.Quantity, line.LineTotal())
	}
	fmt.Printf("Total: USD %.2f\n", a.cart.Total())
}

// -------- Checkout --------

func (a *app) checkout(ctx context.Context) error {
	if !a.tokens.Valid() {
		return fmt.Errorf("please login first")
	}

	reader := bufio.NewReader(os.Stdin)
	form := models.WebOrderForm{
		FullName:    prompt(reader, "Full name"),
		Email:       prompt(reader, "Email"),
		Phone:       prompt(reader, "Phone"),
		WebsiteName: prompt(reader, "Website name"),
		Color:       promptDefault(reader, "Theme color", "Green"),
		Theme:       promptDefault(reader, "Theme (light/dark)", "light"),
		LogoPath:    prompt(reader, "Logo file (optional)"),
		Domain:      prompt(reader, "Domain (optional)"),
		Note:        prompt(reader, "Notes (optional)"),
	}

	order, err := models.BuildOrder(a.cart.Load(), form)
	if err != nil {
		return err
	}

	if form.LogoPath != "" {
		if err := a.client.PlaceWebOrder(ctx, order, form); err != nil {
			return fmt.Errorf("failed to place order: %w", err)
		}
	} else {
		if err := a.client.PlaceOrder(ctx, order); err != nil {
			return fmt.Errorf("failed to place order: %w", err)
		}
	}

	a.cart.Clear()
	log.Printf("✅ Order %s placed successfully!", order.OrderID)
	return nil
}

// -------- Account --------

func (a *app) login(ctx context.Context, email, password string) error {
	resp, err := a.client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	log.Printf("✅ Logged in as %s %s (%s)", resp.User.FirstName, resp.User.LastName, resp.User.Role)
	return nil
}

func (a *app) register(ctx context.Context) error {
	reader := bufio.NewReader(os.Stdin)
	req := models.RegisterRequest{
		Email:     prompt(reader, "Email"),
		FirstName: prompt(reader, "First name"),
		LastName:  prompt(reader, "Last name"),
		Password:  prompt(reader, "Password"),
		Phone:     prompt(reader, "Phone (optional)"),
	}
	if req.Email == "" || req.Password == "" {
		return fmt.Errorf("email and password are required")
	}
	if err := a.client.Register(ctx, req); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	log.Println("✅ Account created, you can login now")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	user, err := a.client.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s <%s> role=%s\n", user.FirstName, user.LastName, user.Email, user.Role)
	return nil
}

func (a *app) forgotPassword(ctx context.Context, email string) error {
	if err := a.client.SendOTP(ctx, email); err != nil {
		return fmt.Errorf("failed to send OTP: %w", err)
	}
	log.Printf("✅ OTP sent to %s", email)

	reader := bufio.NewReader(os.Stdin)
	otp, err := strconv.Atoi(prompt(reader, "OTP"))
	if err != nil {
		return fmt.Errorf("OTP must be a number")
	}
	newPassword := prompt(reader, "New password")
	if newPassword == "" {
		return fmt.Errorf("password is required")
	}

	req := models.ResetPasswordRequest{Email: email, OTP: otp, NewPassword: newPassword}
	if err := a.client.ResetPassword(ctx, req); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	log.Println("✅ Password changed, you can login now")
	return nil
}

func (a *app) listUsers(ctx context.Context) error {
	users, err := a.client.AllUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		blocked := ""
		if u.IsBlocked {
			blocked = " [BLOCKED]"
		}
		fmt.Printf("%-30s %s %s (%s)%s\n", u.Email, u.FirstName, u.LastName, u.Role, blocked)
	}
	return nil
}

// -------- Chat --------

func (a *app) customerChat(ctx context.Context) error {
	sync, err := chat.NewCustomerSync(a.client, a.guest, chat.NewBellNotifier(), a.interval)
	if err != nil {
		return err
	}

	name, _ := a.guest.DisplayName()
	log.Printf("💬 Chatting as %s — type a message, /image <path> to send a picture, Ctrl+C to leave", name)

	go a.renderMessages(ctx, sync)
	go sync.Run(ctx)

	return a.readAndSend(ctx, sync)
}

func (a *app) adminChat(ctx context.Context) error {
	ros := roster.New(a.client, a.interval)
	if err := ros.Refresh(ctx); err != nil {
		return err
	}
	go ros.Run(ctx)

	selected := ros.Selected()
	if selected == "" {
		return fmt.Errorf("no customer conversations yet")
	}
	for _, e := range ros.Entries() {
		marker := " "
		if e.GuestID == selected {
			marker = ">"
		}
		fmt.Printf("%s %-20s unread=%d\n", marker, e.CustomerName, e.UnreadCount)
	}
	ros.Select(ctx, selected)

	sync := chat.NewAdminSync(a.client, selected, chat.NewBellNotifier(), a.interval)
	go a.renderMessages(ctx, sync)
	go sync.Run(ctx)

	return a.readAndSend(ctx, sync)
}

// renderMessages reprints the conversation whenever its length changes.
func (a *app) renderMessages(ctx context.Context, sync *chat.Sync) {
	seen := -1
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			messages := sync.Messages()
			if len(messages) == seen {
				continue
			}
			seen = len(messages)
			for _, m := range messages {
				who := m.Name
				if m.Sender == models.SenderAdmin {
					who = "Admin"
				}
				if m.Type == models.MessageTypeImage {
					fmt.Printf("[%s] %s: 🖼  %s\n", m.CreatedAt.Format("15:04"), who, m.ImageURL)
				} else {
					fmt.Printf("[%s] %s: %s\n", m.CreatedAt.Format("15:04"), who, m.Message)
				}
			}
		}
	}
}

func (a *app) readAndSend(ctx context.Context, sync *chat.Sync) error {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var err error
		if path, ok := strings.CutPrefix(line, "/image "); ok {
			var imageURL string
			imageURL, err = a.uploader.Upload(ctx, strings.TrimSpace(path))
			if err == nil {
				err = sync.SendImage(ctx, imageURL)
			}
		} else {
			err = sync.SendText(ctx, line)
		}
		if err != nil {
			log.Printf("❌ Send failed: %v", err)
		}
	}
	return scanner.Err()
}

// -------- Admin extras --------

func (a *app) exportProducts(ctx context.Context, path string) error {
	products, err := a.client.ListProducts(ctx)
	if err != nil {
		return err
	}
	if err := admin.SaveProductsXLSX(products, path); err != nil {
		return err
	}
	log.Printf("✅ Exported %d products to %s", len(products), path)
	return nil
}

// -------- Helpers --------

func prompt(reader *bufio.Reader, label string) string {
	fmt.Printf("%s: ", label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptDefault(reader *bufio.Reader, label, fallback string) string {
	if v := prompt(reader, fmt.Sprintf("%s [%s]", label, fallback)); v != "" {
		return v
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func storePath() string {
	if path := os.Getenv("STORE_PATH"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "storefront.db"
	}
	return filepath.Join(home, ".snapsite", "storefront.db")
}

func pollInterval() time.Duration {
	raw := os.Getenv("CHAT_POLL_INTERVAL")
	if raw == "" {
		return chat.DefaultPollInterval
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("❌ Invalid CHAT_POLL_INTERVAL %q, using default", raw)
		return chat.DefaultPollInterval
	}
	return d
}

func usage() {
	fmt.Fprintln(os.Stderr, `SnapSite storefront client

Usage:
  storefront products                    list the catalog
  storefront product <id>                show one product
  storefront cart [show|add|remove|clear|total]
  storefront checkout                    place an order from the cart
  storefront login <email> <password>
  storefront logout
  storefront register
  storefront whoami
  storefront forgot-password <email>
  storefront users                       list accounts (admin)
  storefront block <email>               toggle account block (admin)
  storefront chat                        customer support chat
  storefront admin-chat                  admin chat back-office
  storefront export-products [file]      export catalog to xlsx`)
}

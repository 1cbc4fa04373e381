package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dlcfoodgida-bot/DELICIOUS-GASTROMARKET/internal/api"
	"github.com/dlcfoodgida-bot/DELICIOUS-GASTROMARKET/internal/models"
	"github.com/dlcfoodgida-bot/DELICIOUS-GASTROMARKET/internal/services"
)

const usage = `kullanım: market <komut> [argümanlar]

  home                       ana sayfa
  search <terim>             ürün ara
  category <id>              kategori ürünleri
  product <id>               ürün detayı
  cart                       sepeti göster
  add <ürün> [adet]          sepete ekle
  set <ürün> <adet>          adedi değiştir (0 siler)
  remove <ürün>              sepetten çıkar
  clear                      sepeti boşalt
  favorites                  favorileri göster
  fav <ürün>                 favoriye ekle/çıkar
  checkout [bayraklar]       siparişi tamamla (checkout -h)
  orders                     geçmiş siparişler
  order <id>                 sipariş detayı
  session                    oturum kimliği
`

// remoteAPI, istemcinin kullandığı tüm uç noktalardır (bkz. api.Client).
type remoteAPI interface {
	services.CartAPI
	services.FavoritesAPI
	services.OrderAPI
	services.CatalogAPI
}

type app struct {
	out       io.Writer
	api       remoteAPI
	identity  services.SessionResolver
	catalog   *services.Catalog
	cart      *services.CartStore
	favorites *services.FavoritesStore
	orders    *services.OrderHistory
	now       func() time.Time
	logger    *zap.Logger
}

func newApp(out io.Writer, remote remoteAPI, identity services.SessionResolver, now func() time.Time, logger *zap.Logger) *app {
	return &app{
		out:       out,
		api:       remote,
		identity:  identity,
		catalog:   services.NewCatalog(remote, logger),
		cart:      services.NewCartStore(remote, identity, logger),
		favorites: services.NewFavoritesStore(remote, identity, logger),
		orders:    services.NewOrderHistory(remote, identity, logger),
		now:       now,
		logger:    logger,
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return nil
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case "home":
		return a.home(ctx)
	case "search":
		return a.search(ctx, strings.Join(args, " "))
	case "category":
		id, err := arg(args, 0, "kategori")
		if err != nil {
			return err
		}
		return a.category(ctx, id)
	case "product":
		id, err := arg(args, 0, "ürün")
		if err != nil {
			return err
		}
		return a.product(ctx, id)
	case "session":
		id, err := a.identity.Ensure(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, id)
		return nil
	case "orders":
		return a.listOrders(ctx)
	case "order":
		id, err := arg(args, 0, "sipariş")
		if err != nil {
			return err
		}
		return a.showOrder(ctx, id)
	case "favorites", "fav":
		if err := a.favorites.InitSession(ctx); err != nil {
			return err
		}
		if cmd == "fav" {
			id, err := arg(args, 0, "ürün")
			if err != nil {
				return err
			}
			if err := a.favorites.ToggleFavorite(ctx, id); err != nil {
				return err
			}
		}
		return a.printFavorites()
	case "cart", "add", "set", "remove", "clear", "checkout":
		if err := a.cart.InitSession(ctx); err != nil {
			return err
		}
		return a.cartCommand(ctx, cmd, args)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		return errors.Errorf("bilinmeyen komut %q", cmd)
	}
}

func (a *app) cartCommand(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "add":
		id, err := arg(args, 0, "ürün")
		if err != nil {
			return err
		}
		qty := 1
		if len(args) > 1 {
			if qty, err = strconv.Atoi(args[1]); err != nil {
				return errors.Wrap(err, "adet")
			}
		}
		if err := a.cart.AddToCart(ctx, id, qty); err != nil {
			return err
		}
	case "set":
		id, err := arg(args, 0, "ürün")
		if err != nil {
			return err
		}
		raw, err := arg(args, 1, "adet")
		if err != nil {
			return err
		}
		qty, err := strconv.Atoi(raw)
		if err != nil {
			return errors.Wrap(err, "adet")
		}
		if err := a.cart.UpdateQuantity(ctx, id, qty); err != nil {
			return err
		}
	case "remove":
		id, err := arg(args, 0, "ürün")
		if err != nil {
			return err
		}
		if err := a.cart.RemoveFromCart(ctx, id); err != nil {
			return err
		}
	case "clear":
		if err := a.cart.ClearCart(ctx); err != nil {
			return err
		}
	case "checkout":
		return a.checkout(ctx, args)
	}
	a.printCart()
	return nil
}

func arg(args []string, i int, name string) (string, error) {
	if len(args) <= i || strings.TrimSpace(args[i]) == "" {
		return "", errors.Errorf("%s kimliği gerekli", name)
	}
	return args[i], nil
}

func tl(d decimal.Decimal) string {
	return d.StringFixed(2) + " TL"
}

func price(v float64) string {
	return tl(services.Money(v))
}

func (a *app) printProducts(products []models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(a.out, "  (ürün yok)")
		return
	}
	for _, p := range products {
		line := fmt.Sprintf("  %-8s %-28s %12s / %s", p.ID, p.DisplayName(), price(p.Price), p.Unit)
		if p.IsOnSale && p.OriginalPrice != nil {
			line += fmt.Sprintf("  (%s yerine", price(*p.OriginalPrice))
			if p.DiscountPercent != nil {
				line += fmt.Sprintf(", %%%d indirim", *p.DiscountPercent)
			}
			line += ")"
		}
		fmt.Fprintln(a.out, line)
	}
}

func (a *app) home(ctx context.Context) error {
	home, err := a.catalog.Home(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Kampanyalar")
	for _, b := range home.Banners {
		fmt.Fprintf(a.out, "  %s: %s\n", b.Title, b.Subtitle)
	}
	fmt.Fprintln(a.out, "Kategoriler")
	for _, c := range home.Categories {
		fmt.Fprintf(a.out, "  %-24s %s\n", c.ID, c.NameTR)
	}
	fmt.Fprintln(a.out, "Öne Çıkanlar")
	a.printProducts(home.Featured)
	fmt.Fprintln(a.out, "İndirimdekiler")
	a.printProducts(home.OnSale)
	return nil
}

func (a *app) search(ctx context.Context, term string) error {
	products, err := a.catalog.Search(ctx, term)
	if err != nil {
		return err
	}
	a.printProducts(products)
	return nil
}

func (a *app) category(ctx context.Context, id string) error {
	page, err := a.catalog.Category(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (%d ürün)\n", page.Category.NameTR, len(page.Products))
	a.printProducts(page.Products)
	return nil
}

func (a *app) product(ctx context.Context, id string) error {
	p, err := a.catalog.Product(ctx, id)
	if err != nil {
		return err
	}
	a.printProducts([]models.Product{*p})
	if p.DescriptionTR != "" {
		fmt.Fprintf(a.out, "  %s\n", p.DescriptionTR)
	}
	if p.Rating > 0 {
		fmt.Fprintf(a.out, "  %.1f puan (%d değerlendirme)\n", p.Rating, p.ReviewCount)
	}
	return nil
}

func (a *app) printCart() {
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Sepetiniz boş")
		return
	}
	for _, item := range items {
		p, ok := a.cart.ProductFor(item.ProductID)
		if !ok {
			fmt.Fprintf(a.out, "  %-8s x%d\n", item.ProductID, item.Quantity)
			continue
		}
		line := services.Money(p.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		fmt.Fprintf(a.out, "  %-8s %-28s %d x %s = %s\n", p.ID, p.DisplayName(), item.Quantity, price(p.Price), tl(line))
	}
	a.printSummary(a.cart.Summary())
}

func (a *app) printSummary(s services.Summary) {
	fmt.Fprintf(a.out, "Ara Toplam: %s\n", tl(s.Subtotal))
	if s.DeliveryFee.IsZero() {
		fmt.Fprintln(a.out, "Teslimat: Ücretsiz")
	} else {
		fmt.Fprintf(a.out, "Teslimat: %s\n", tl(s.DeliveryFee))
		fmt.Fprintf(a.out, "%s daha ekleyin, teslimat ücretsiz olsun!\n", tl(services.RemainingForFreeDelivery(s.Subtotal)))
	}
	fmt.Fprintf(a.out, "Toplam: %s\n", tl(s.Total))
}

func (a *app) printFavorites() error {
	fmt.Fprintf(a.out, "Favoriler (%d)\n", a.favorites.Count())
	a.printProducts(a.favorites.Products())
	return nil
}

func (a *app) checkout(ctx context.Context, args []string) error {
	draft := services.NewCheckoutDraft(a.cart, a.api, a.now(), a.logger)

	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	fs.SetOutput(a.out)
	fs.StringVar(&draft.Address.FullName, "name", "", "ad soyad")
	fs.StringVar(&draft.Address.Phone, "phone", "", "telefon")
	fs.StringVar(&draft.Address.Address, "address", "", "açık adres")
	fs.StringVar(&draft.Address.City, "city", services.DefaultCity, "il")
	fs.StringVar(&draft.Address.District, "district", "", "ilçe")
	fs.StringVar(&draft.Address.Notes, "notes", "", "sipariş notu")
	date := fs.String("date", "", "teslimat günü (YYYY-MM-DD)")
	slot := fs.String("slot", "", "teslimat saati, örn. \"09:00 - 12:00\"")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if *date != "" {
		if err := draft.SelectDate(*date); err != nil {
			a.printDates(draft)
			return err
		}
	}
	if *slot != "" {
		if err := draft.SelectTimeSlot(*slot); err != nil {
			fmt.Fprintf(a.out, "Saatler: %s\n", strings.Join(services.TimeSlots, ", "))
			return err
		}
	}

	order, err := draft.Submit(ctx)
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		if ve.Field == "delivery_date" {
			a.printDates(draft)
		}
		return errors.New(ve.Message)
	case errors.Is(err, api.ErrNetwork):
		return errors.Wrap(err, "Sipariş oluşturulurken bir hata oluştu")
	case err != nil:
		return err
	}

	fmt.Fprintf(a.out, "Siparişiniz alındı! Sipariş No: %s\n", order.Number())
	fmt.Fprintf(a.out, "Teslimat: %s, %s\n", order.DeliveryDate, order.DeliveryTimeSlot)
	fmt.Fprintf(a.out, "Toplam: %s (kapıda ödeme)\n", price(order.Total))
	return nil
}

func (a *app) printDates(draft *services.CheckoutDraft) {
	fmt.Fprintln(a.out, "Teslimat günleri:")
	for _, d := range draft.Dates() {
		fmt.Fprintf(a.out, "  %s  %s\n", d.Value, d.Label)
	}
}

func (a *app) listOrders(ctx context.Context) error {
	orders, err := a.orders.List(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "Henüz siparişiniz yok")
		return nil
	}
	for _, o := range orders {
		fmt.Fprintf(a.out, "  %s  %s  %-14s %s  (%s)\n",
			o.Number(), o.CreatedAt.Local().Format("02.01.2006 15:04"), o.StatusLabel(), price(o.Total), o.ID)
	}
	return nil
}

func (a *app) showOrder(ctx context.Context, id string) error {
	o, err := a.orders.Get(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Sipariş %s - %s\n", o.Number(), o.StatusLabel())
	for i, step := range models.StatusSteps {
		mark := " "
		if i <= o.StatusStep() {
			mark = "x"
		}
		fmt.Fprintf(a.out, "  [%s] %s\n", mark, models.StatusLabel(step))
	}
	for _, item := range o.Items {
		fmt.Fprintf(a.out, "  %-28s %d x %s = %s\n", item.ProductNameTR, item.Quantity, price(item.Price), price(item.Total))
	}
	fmt.Fprintf(a.out, "Ara Toplam: %s\n", price(o.Subtotal))
	if o.DeliveryFee == 0 {
		fmt.Fprintln(a.out, "Teslimat: Ücretsiz")
	} else {
		fmt.Fprintf(a.out, "Teslimat: %s\n", price(o.DeliveryFee))
	}
	fmt.Fprintf(a.out, "Toplam: %s\n", price(o.Total))
	addr := o.DeliveryAddress
	fmt.Fprintf(a.out, "Adres: %s, %s, %s/%s\n", addr.FullName, addr.Address, addr.District, addr.City)
	fmt.Fprintf(a.out, "Teslimat: %s, %s\n", o.DeliveryDate, o.DeliveryTimeSlot)
	return nil
}

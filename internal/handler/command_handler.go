package handler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-catalog-engine/internal/catalog"
	"go-catalog-engine/internal/model"
	"go-catalog-engine/internal/repository"
	"go-catalog-engine/internal/service"
)

// CommandHandler speaks the line-oriented text protocol: one command per
// input line, a block of response lines per command.
type CommandHandler struct {
	catalog service.CatalogService
	cart    service.CartService
	sales   service.DashboardService
	logger  *zap.SugaredLogger
}

func NewCommandHandler(c service.CatalogService, cs service.CartService, sales service.DashboardService, logger *zap.SugaredLogger) *CommandHandler {
	return &CommandHandler{catalog: c, cart: cs, sales: sales, logger: logger}
}

// Serve handles every line of r until EOF or ctx is cancelled. Blank lines
// and lines starting with '#' are ignored.
func (h *CommandHandler) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		h.Handle(bw, line)
		if err := bw.Flush(); err != nil {
			return err
		}
	}
	return sc.Err()
}

// Handle executes a single command and writes its response.
func (h *CommandHandler) Handle(w io.Writer, command string) {
	action, rest, _ := strings.Cut(strings.TrimSpace(command), " ")
	action = strings.ToUpper(action)
	rest = strings.TrimSpace(rest)
	h.logger.Debugw("command", "action", action, "args", rest)

	out := &response{w: w}
	switch action {
	case "SEARCH":
		out.productBlock("SEARCH_RESULTS", "SEARCH_END", h.catalog.Search(rest), true)
	case "SEARCHCAT":
		category, query, _ := strings.Cut(rest, " ")
		out.productBlock("CATEGORY_SEARCH_RESULTS", "CATEGORY_SEARCH_END",
			h.catalog.SearchInCategory(category, strings.TrimSpace(query)), true)
	case "LISTCAT":
		out.productBlock("CATEGORY_PRODUCTS", "CATEGORY_PRODUCTS_END", h.catalog.ListCategory(rest), false)
	case "LISTALL":
		out.productBlock("ALL_PRODUCTS", "PRODUCTS_END", h.catalog.ListAll(), false)
	case "LISTALLFILTER":
		out.productBlock("ALL_PRODUCTS", "PRODUCTS_END", h.catalog.ListFiltered(model.ParseFilters(rest)), true)
	case "SEARCHFILTER":
		query, filters, _ := strings.Cut(rest, "|")
		products := h.catalog.SearchFiltered(strings.TrimSpace(query), model.ParseFilters(filters))
		out.productBlock("SEARCH_RESULTS", "SEARCH_END", products, true)
	case "ADD":
		h.add(out, rest)
	case "REMOVE":
		h.remove(out, rest)
	case "SHOWCART":
		h.showCart(out)
	case "CHECKOUT":
		h.checkout(out)
	case "CLEARCART":
		if err := h.cart.Clear(); err != nil {
			out.error(err)
			return
		}
		out.line("SUCCESS: Cart cleared")
	case "RECOMMEND":
		h.recommend(out, rest)
	case "STOCK":
		h.adjustStock(out, rest)
	case "STATS":
		s := h.catalog.Stats()
		out.line("STATS")
		out.line("TOTAL_PRODUCTS: " + strconv.Itoa(s.TotalProducts))
		out.line("LOW_STOCK: " + strconv.Itoa(s.LowStockCount))
		out.line("TOTAL_VALUATION: " + money(s.TotalValuation))
		out.line("STATS_END")
	case "SALES":
		h.salesReport(out, rest)
	case "RECEIPTS":
		h.receipts(out, rest)
	default:
		out.line("ERROR: Unknown command")
	}
}

// splitQuantity reads "name [qty]". The trailing token is a quantity only when
// it is an integer and the remaining words name a product, so names that end
// in a number ("OnePlus 12") still resolve.
func (h *CommandHandler) splitQuantity(rest string) (string, int) {
	i := strings.LastIndex(rest, " ")
	if i < 0 {
		return rest, 1
	}
	qty, err := strconv.Atoi(rest[i+1:])
	if err != nil {
		return rest, 1
	}
	name := strings.TrimSpace(rest[:i])
	if _, ok := h.catalog.Get(name); !ok {
		if _, whole := h.catalog.Get(rest); whole {
			return rest, 1
		}
	}
	return name, qty
}

func (h *CommandHandler) add(out *response, rest string) {
	name, qty := h.splitQuantity(rest)
	line, err := h.cart.Add(name, qty)
	if err != nil {
		out.error(err)
		return
	}
	if line.Quantity == qty {
		out.line(fmt.Sprintf("SUCCESS: Added %d x %s to cart", qty, line.ProductName))
		return
	}
	out.line(fmt.Sprintf("SUCCESS: Updated %s quantity to %d", line.ProductName, line.Quantity))
}

func (h *CommandHandler) remove(out *response, name string) {
	line, err := h.cart.Remove(name)
	if err != nil {
		out.error(err)
		return
	}
	out.line(fmt.Sprintf("SUCCESS: Removed %s from cart", line.ProductName))
}

func (h *CommandHandler) showCart(out *response) {
	entries, total := h.cart.Contents()
	if len(entries) == 0 {
		out.line("CART_EMPTY")
		return
	}
	out.line("CART_START")
	for _, e := range entries {
		out.line(strings.Join([]string{e.Name, strconv.Itoa(e.Quantity), money(e.UnitPrice), money(e.Subtotal)}, "|"))
	}
	out.line("CART_END")
	out.line("TOTAL: " + money(total))
}

func (h *CommandHandler) checkout(out *response) {
	receipt, err := h.cart.Checkout()
	if err != nil {
		out.error(err)
		return
	}
	out.line("CHECKOUT_SUCCESS")
	out.line("TOTAL_PAID: " + money(receipt.Total))
	out.line("RECEIPT_ID: " + receipt.ID.String())
}

func (h *CommandHandler) recommend(out *response, name string) {
	recs := h.catalog.Recommend(name, 0)
	if len(recs) == 0 {
		out.line("NO_RECOMMENDATIONS")
		return
	}
	out.line("RECOMMENDATIONS")
	for _, p := range recs {
		out.line(p.Name + "|" + money(p.Price))
	}
	out.line("RECOMMEND_END")
}

// adjustStock handles "STOCK name delta", e.g. "STOCK Mouse -2".
func (h *CommandHandler) adjustStock(out *response, rest string) {
	i := strings.LastIndex(rest, " ")
	if i < 0 {
		out.line("ERROR: Usage: STOCK <product> <delta>")
		return
	}
	delta, err := strconv.Atoi(rest[i+1:])
	if err != nil {
		out.line("ERROR: Invalid stock delta")
		return
	}
	p, err := h.catalog.AdjustStock(strings.TrimSpace(rest[:i]), delta)
	if err != nil {
		out.error(err)
		return
	}
	out.line(fmt.Sprintf("SUCCESS: %s stock is now %d", p.Name, p.Stock))
}

// salesReport handles "SALES [days]", 7 days by default.
func (h *CommandHandler) salesReport(out *response, rest string) {
	days, err := strconv.Atoi(rest)
	if err != nil || days <= 0 {
		days = 7
	}
	data, err := h.sales.GetSales(days)
	if err != nil {
		h.logger.Errorw("failed to build sales report", "error", err)
		out.line("ERROR: Failed to fetch sales")
		return
	}
	out.line("SALES " + strconv.Itoa(days))
	for _, d := range data {
		out.line(strings.Join([]string{d.Date, strconv.Itoa(d.Receipts), strconv.Itoa(d.Units), money(d.Revenue)}, "|"))
	}
	out.line("SALES_END")
}

// receipts handles "RECEIPTS [n]": the n most recent checkouts, 10 by default.
func (h *CommandHandler) receipts(out *response, rest string) {
	limit, err := strconv.Atoi(rest)
	if err != nil || limit <= 0 {
		limit = 10
	}
	list, err := h.cart.Receipts()
	if err != nil {
		h.logger.Errorw("failed to load receipts", "error", err)
		out.line("ERROR: Failed to fetch receipts")
		return
	}
	if len(list) == 0 {
		out.line("NO_RECEIPTS")
		return
	}
	out.line("RECEIPTS")
	for _, r := range list[:min(limit, len(list))] {
		units := 0
		for _, l := range r.Lines {
			units += l.Quantity
		}
		out.line(strings.Join([]string{
			r.ID.String(),
			r.CreatedAt.Format(time.DateTime),
			strconv.Itoa(units),
			money(r.Total),
		}, "|"))
	}
	out.line("RECEIPTS_END")
}

type response struct {
	w   io.Writer
	err error
}

func (r *response) line(s string) {
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.w, s+"\n")
}

// productBlock writes header, one row per product, footer. When emptyAsNone
// is set an empty result is reported as NO_RESULTS instead.
func (r *response) productBlock(header, footer string, products []model.Product, emptyAsNone bool) {
	if len(products) == 0 && emptyAsNone {
		r.line("NO_RESULTS")
		return
	}
	r.line(header)
	for _, p := range products {
		r.line(productRow(p))
	}
	r.line(footer)
}

func (r *response) error(err error) {
	r.line("ERROR: " + reason(err))
}

// reason turns an error into the sentence reported to the client.
func reason(err error) string {
	if errors.Is(err, catalog.ErrProductNotFound) {
		return "Product not found"
	}
	return capitalize(err.Error())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func productRow(p model.Product) string {
	return strings.Join([]string{
		p.Name,
		money(p.Price),
		strconv.Itoa(p.Stock),
		p.Category,
		repository.FormatNumber(p.Rating),
		p.Brand,
	}, "|")
}

// money rounds to cents and drops trailing zeros.
func money(v float64) string {
	return repository.FormatNumber(math.Round(v*100) / 100)
}

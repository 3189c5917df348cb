package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/vanshgehlot9/nikkifashionbot/internal/application/forecast"
	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/order"
	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/shared"
	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/support"
	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/tracking"
)

// splitArgs splits a command argument string on whitespace.
func splitArgs(raw string) []string {
	return strings.Fields(raw)
}

// normalizeOrderName ensures the "#" prefix operators usually omit.
func normalizeOrderName(name string) string {
	if name == "" || strings.HasPrefix(name, "#") {
		return name
	}
	return "#" + name
}

func (b *Bot) handleStart(chatID int64) {
	b.reply(chatID, "👗 Nikki Fashion back-office bot.\n\nSend a SKU to look up a product, or use /help for the full command list.")
}

// handleSKU looks up a product by SKU and renders a storefront-style card.
func (b *Bot) handleSKU(ctx context.Context, chatID int64, sku string) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return
	}

	p, err := b.deps.Store.ProductBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, order.ErrVariantNotFound) {
			b.reply(chatID, fmt.Sprintf("❌ No product found for SKU %s.", sku))
			return
		}
		b.logger.Warn("Product lookup failed", zap.String("sku", sku), zap.Error(err))
		b.reply(chatID, "❌ Product lookup failed, try again later.")
		return
	}

	b.replyMarkdown(chatID, b.renderProduct(sku, p))
}

func (b *Bot) handleSKUCommand(ctx context.Context, chatID int64, args []string) {
	if len(args) != 1 {
		b.reply(chatID, "Usage: /sku <SKU>")
		return
	}
	b.handleSKU(ctx, chatID, args[0])
}

// renderProduct formats a product lookup for operator chat.
func (b *Bot) renderProduct(sku string, p *order.Product) string {
	symbol := b.deps.Currency.Symbol(p.Currency)

	var sb strings.Builder
	fmt.Fprintf(&sb, "*%s*\n", p.Title)
	if p.Description != "" {
		fmt.Fprintf(&sb, "%s\n", p.Description)
	}
	sb.WriteString("\n")
	for _, v := range p.Variants {
		marker := " "
		if strings.EqualFold(v.SKU, sku) {
			marker = "▸"
		}
		fmt.Fprintf(&sb, "%s %s - %s%s, stock %d\n", marker, v.Title, symbol, v.Price.StringFixed(2), v.Inventory)
	}
	if p.URL != "" {
		// Relative product paths are anchored on the storefront domain.
		if strings.HasPrefix(p.URL, "http") {
			fmt.Fprintf(&sb, "\n%s", p.URL)
		} else {
			fmt.Fprintf(&sb, "\n%s%s", b.domain, p.URL)
		}
	}
	return sb.String()
}

func (b *Bot) handleSetStock(ctx context.Context, chatID int64, args []string) {
	if len(args) != 2 {
		b.reply(chatID, "Usage: /setstock <SKU> <quantity>")
		return
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil || qty < 0 {
		b.reply(chatID, "❌ Quantity must be a non-negative number.")
		return
	}

	previous, err := b.deps.OrderOps.SetStock(ctx, args[0], qty)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("❌ Setting stock for %s failed: %v", args[0], err))
		return
	}
	b.reply(chatID, fmt.Sprintf("✅ %s stock set: %d → %d", args[0], previous, qty))
}

func (b *Bot) handleReturn(ctx context.Context, chatID int64, args []string) {
	if len(args) != 2 {
		b.reply(chatID, "Usage: /return <SKU> <quantity>")
		return
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil || qty <= 0 {
		b.reply(chatID, "❌ Quantity must be a positive number.")
		return
	}

	newQty, err := b.deps.OrderOps.Return(ctx, args[0], qty)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("❌ Processing return for %s failed: %v", args[0], err))
		return
	}
	b.reply(chatID, fmt.Sprintf("✅ Return processed for %s, stock is now %d", args[0], newQty))
}

func (b *Bot) handleReconcile(ctx context.Context, chatID int64) {
	b.reply(chatID, "🔄 Reconciliation started...")

	result, err := b.deps.Reconciler.Run(ctx)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("❌ Reconciliation failed: %v", err))
		return
	}

	if result.Records == 0 {
		b.reply(chatID, fmt.Sprintf("✅ Nothing new to process (%d already handled).", result.Skipped))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "✅ Processed %d new record(s), skipped %d.\n\n", result.Records, result.Skipped)
	for _, line := range result.Actions {
		sb.WriteString("• " + line + "\n")
	}
	b.reply(chatID, sb.String())
}

// handleReprocess re-runs a single tracking record, bypassing the ledger.
func (b *Bot) handleReprocess(ctx context.Context, chatID int64, args []string) {
	if len(args) < 2 || len(args) > 3 {
		b.reply(chatID, "Usage: /reprocess <tracking-id> <order> [status]")
		return
	}
	rec := tracking.Record{
		TrackingID: args[0],
		OrderName:  normalizeOrderName(args[1]),
	}
	if len(args) == 3 {
		rec.Status = args[2]
	}

	actions := b.deps.Reconciler.ReconcileOne(ctx, rec)
	var sb strings.Builder
	sb.WriteString("🔁 Reprocessed:\n")
	for _, line := range actions {
		sb.WriteString("• " + line + "\n")
	}
	b.reply(chatID, sb.String())
}

func (b *Bot) handleSetAlert(chatID int64, args []string) {
	if len(args) != 2 {
		b.reply(chatID, "Usage: /setalert <SKU> <threshold>")
		return
	}
	threshold, err := strconv.Atoi(args[1])
	if err != nil || threshold < 0 {
		b.reply(chatID, "❌ Threshold must be a non-negative number.")
		return
	}
	if err := b.deps.Alerts.SetThreshold(args[0], threshold); err != nil {
		b.reply(chatID, fmt.Sprintf("❌ Saving alert failed: %v", err))
		return
	}
	b.reply(chatID, fmt.Sprintf("✅ Alert set: %s at ≤ %d units.", args[0], threshold))
}

func (b *Bot) handleLowStock(ctx context.Context, chatID int64) {
	alerts, err := b.deps.Alerts.CheckLowStock(ctx)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("❌ Low-stock check failed: %v", err))
		return
	}
	if len(alerts) == 0 {
		b.reply(chatID, "✅ All monitored SKUs are above their thresholds.")
		return
	}

	var sb strings.Builder
	sb.WriteString("⚠️ Low stock:\n")
	for _, a := range alerts {
		fmt.Fprintf(&sb, "• %s: %d left (threshold %d)\n", a.SKU, a.Current, a.Threshold)
	}
	for _, line := range b.deps.Alerts.ApplyAutoRestock(ctx, alerts) {
		sb.WriteString("• " + line + "\n")
	}
	b.reply(chatID, sb.String())
}

func (b *Bot) handleAutoRestock(chatID int64, args []string) {
	if len(args) != 2 {
		b.reply(chatID, "Usage: /autorestock <SKU> <target>")
		return
	}
	target, err := strconv.Atoi(args[1])
	if err != nil || target <= 0 {
		b.reply(chatID, "❌ Target must be a positive number.")
		return
	}
	if err := b.deps.Alerts.SetAutoRestock(args[0], target); err != nil {
		b.reply(chatID, fmt.Sprintf("❌ Saving auto-restock failed: %v", err))
		return
	}
	b.reply(chatID, fmt.Sprintf("✅ Auto-restock set: %s refills to %d when low.", args[0], target))
}

func (b *Bot) handlePredict(ctx context.Context, chatID int64, args []string) {
	if len(args) != 1 {
		b.reply(chatID, "Usage: /predict <SKU>")
		return
	}

	p, err := b.deps.Forecast.Predict(ctx, args[0])
	if err != nil {
		if errors.Is(err, forecast.ErrNoSalesData) {
			b.reply(chatID, fmt.Sprintf("📊 %s had no sales in the last 30 days.", args[0]))
			return
		}
		b.reply(chatID, fmt.Sprintf("❌ Prediction failed: %v", err))
		return
	}

	b.reply(chatID, fmt.Sprintf(
		"📊 %s\nSold last 30 days: %d\nCurrent stock: %d\nRecommended stock: %d\nShortfall to order: %d",
		p.SKU, p.MonthlyDemand, p.CurrentStock, p.RecommendedStock, p.StockNeeded,
	))
}

func (b *Bot) handleZone(chatID int64, args []string) {
	if len(args) != 1 {
		b.reply(chatID, "Usage: /zone <pincode>")
		return
	}

	zone, minDays, maxDays := b.deps.Zones.Estimate(args[0])
	if zone == shared.ZoneInvalid {
		b.reply(chatID, fmt.Sprintf("❌ %s is not a valid pincode.", args[0]))
		return
	}
	b.reply(chatID, fmt.Sprintf("📍 %s → %s zone, estimated %d-%d days.", args[0], zone, minDays, maxDays))
}

func (b *Bot) handleTicket(chatID int64, args []string) {
	if len(args) == 0 {
		b.reply(chatID, "Usage: /ticket new <order> <description...> | /ticket status <id> <status> | /ticket list")
		return
	}

	switch args[0] {
	case "new":
		if len(args) < 3 {
			b.reply(chatID, "Usage: /ticket new <order> <description...>")
			return
		}
		t, err := b.deps.Tickets.Create(normalizeOrderName(args[1]), strings.Join(args[2:], " "))
		if err != nil {
			b.reply(chatID, fmt.Sprintf("❌ Filing ticket failed: %v", err))
			return
		}
		b.reply(chatID, fmt.Sprintf("🎫 Ticket %s filed for order %s.", t.ID, t.OrderID))

	case "status":
		if len(args) != 3 {
			b.reply(chatID, "Usage: /ticket status <id> <Open|InProgress|Resolved|Closed>")
			return
		}
		status := support.Status(args[2])
		if !status.IsValid() {
			b.reply(chatID, "❌ Status must be one of Open, InProgress, Resolved, Closed.")
			return
		}
		t, err := b.deps.Tickets.UpdateStatus(args[1], status)
		if err != nil {
			if errors.Is(err, support.ErrTicketNotFound) {
				b.reply(chatID, fmt.Sprintf("❌ No ticket %s.", args[1]))
				return
			}
			b.reply(chatID, fmt.Sprintf("❌ Updating ticket failed: %v", err))
			return
		}
		b.reply(chatID, fmt.Sprintf("🎫 Ticket %s is now %s.", t.ID, t.Status))

	case "list":
		tickets := b.deps.Tickets.List()
		if len(tickets) == 0 {
			b.reply(chatID, "🎫 No tickets on file.")
			return
		}
		var sb strings.Builder
		sb.WriteString("🎫 Tickets:\n")
		for _, t := range tickets {
			fmt.Fprintf(&sb, "• %s [%s] %s - %s\n", t.ID, t.Status, t.OrderID, t.Description)
		}
		b.reply(chatID, sb.String())

	default:
		b.reply(chatID, "Usage: /ticket new <order> <description...> | /ticket status <id> <status> | /ticket list")
	}
}

func (b *Bot) handleNotifyMe(chatID int64) {
	if err := b.deps.Notifications.Subscribe(chatID); err != nil {
		b.reply(chatID, fmt.Sprintf("❌ Subscription failed: %v", err))
		return
	}
	b.reply(chatID, "🔔 This chat will receive daily reports.")
}

func (b *Bot) handleReport(ctx context.Context, chatID int64) {
	b.reply(chatID, b.reportText(ctx))
}

// reportText assembles the operator summary: low-stock state plus open
// tickets. Shared between /report and the periodic broadcast.
func (b *Bot) reportText(ctx context.Context) string {
	var sb strings.Builder
	sb.WriteString("📋 Daily report\n\n")

	alerts, err := b.deps.Alerts.CheckLowStock(ctx)
	if err != nil {
		fmt.Fprintf(&sb, "Low stock: check failed: %v\n", err)
	} else if len(alerts) == 0 {
		sb.WriteString("Low stock: none.\n")
	} else {
		sb.WriteString("Low stock:\n")
		for _, a := range alerts {
			fmt.Fprintf(&sb, "• %s: %d left (threshold %d)\n", a.SKU, a.Current, a.Threshold)
		}
	}

	var open int
	for _, t := range b.deps.Tickets.List() {
		if t.Status == support.StatusOpen || t.Status == support.StatusInProgress {
			open++
		}
	}
	fmt.Fprintf(&sb, "\nOpen tickets: %d\n", open)
	return sb.String()
}

func (b *Bot) handleReschedule(ctx context.Context, chatID int64, args []string) {
	if len(args) < 2 {
		b.reply(chatID, "Usage: /reschedule <order> <date> [reason...]")
		return
	}
	orderName := normalizeOrderName(args[0])
	reason := strings.Join(args[2:], " ")

	if err := b.deps.OrderOps.Reschedule(ctx, orderName, args[1], reason); err != nil {
		b.replyOrderErr(chatID, orderName, "Reschedule", err)
		return
	}
	b.reply(chatID, fmt.Sprintf("📅 Order %s rescheduled to %s.", orderName, args[1]))
}

func (b *Bot) handlePartner(ctx context.Context, chatID int64, args []string) {
	if len(args) != 2 {
		b.reply(chatID, "Usage: /partner <order> <partner>")
		return
	}
	orderName := normalizeOrderName(args[0])

	if err := b.deps.OrderOps.UpdatePartner(ctx, orderName, args[1]); err != nil {
		b.replyOrderErr(chatID, orderName, "Partner update", err)
		return
	}
	b.reply(chatID, fmt.Sprintf("🚚 Order %s delivery partner set to %s.", orderName, args[1]))
}

func (b *Bot) handleHold(ctx context.Context, chatID int64, args []string) {
	if len(args) < 2 {
		b.reply(chatID, "Usage: /hold <order> <reason...>")
		return
	}
	orderName := normalizeOrderName(args[0])
	reason := strings.Join(args[1:], " ")

	if err := b.deps.OrderOps.Hold(ctx, orderName, reason); err != nil {
		b.replyOrderErr(chatID, orderName, "Hold", err)
		return
	}
	b.reply(chatID, fmt.Sprintf("⏸ Order %s placed on hold: %s", orderName, reason))
}

func (b *Bot) handleSchedule(ctx context.Context, chatID int64, args []string) {
	if len(args) < 2 {
		b.reply(chatID, "Usage: /schedule <order> <date> [slot...]")
		return
	}
	orderName := normalizeOrderName(args[0])
	slot := strings.Join(args[2:], " ")

	if err := b.deps.OrderOps.Schedule(ctx, orderName, args[1], slot); err != nil {
		b.replyOrderErr(chatID, orderName, "Schedule", err)
		return
	}
	b.reply(chatID, fmt.Sprintf("📆 Order %s delivery scheduled for %s %s.", orderName, args[1], slot))
}

func (b *Bot) handleNotify(ctx context.Context, chatID int64, args []string) {
	if len(args) < 3 {
		b.reply(chatID, "Usage: /notify <order> <channel> <message...>")
		return
	}
	orderName := normalizeOrderName(args[0])
	message := strings.Join(args[2:], " ")

	if err := b.deps.OrderOps.NotifyCustomer(ctx, orderName, args[1], message); err != nil {
		b.replyOrderErr(chatID, orderName, "Notification", err)
		return
	}
	b.reply(chatID, fmt.Sprintf("📣 Notification recorded for order %s via %s.", orderName, args[1]))
}

func (b *Bot) handleHistory(ctx context.Context, chatID int64, args []string) {
	if len(args) != 1 {
		b.reply(chatID, "Usage: /history <order>")
		return
	}
	orderName := normalizeOrderName(args[0])

	events, err := b.deps.OrderOps.RescheduleHistory(ctx, orderName)
	if err != nil {
		b.replyOrderErr(chatID, orderName, "History lookup", err)
		return
	}
	if len(events) == 0 {
		b.reply(chatID, fmt.Sprintf("📜 Order %s has never been rescheduled.", orderName))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📜 Reschedule history for %s:\n", orderName)
	for _, e := range events {
		line := fmt.Sprintf("• %s", e.NewDate)
		if e.Reason != "" {
			line += " (" + e.Reason + ")"
		}
		sb.WriteString(line + "\n")
	}
	b.reply(chatID, sb.String())
}

// replyOrderErr maps order-level errors to operator-facing messages.
func (b *Bot) replyOrderErr(chatID int64, orderName, action string, err error) {
	if errors.Is(err, order.ErrOrderNotFound) {
		b.reply(chatID, fmt.Sprintf("❌ Order %s not found.", orderName))
		return
	}
	b.reply(chatID, fmt.Sprintf("❌ %s for order %s failed: %v", action, orderName, err))
}

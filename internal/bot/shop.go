package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"account-shop/internal/usecase/commands"

	"github.com/bwmarrin/discordgo"
)

const (
	emojiTick  = "✅"
	emojiCross = "❌"
	emojiCart  = "🛒"
	emojiBox   = "📦"
)

func (b *Bot) shopEmbed(ctx context.Context) (*discordgo.MessageEmbed, error) {
	view, err := b.stock.Current(ctx)
	if err != nil {
		return nil, err
	}

	unitPrice := formatCents(b.cfg.Shop.UnitPriceCents)
	return &discordgo.MessageEmbed{
		Title: emojiCart + " Account Shop",
		Description: fmt.Sprintf(
			"Price per account: **%s**\nIn stock: **%d**\n\n"+
				"Pick a quantity below (minimum %d, maximum %d). "+
				"Payment is by gift card; an operator verifies it before delivery.",
			unitPrice, view.Available, b.cfg.Shop.MinQuantity, b.cfg.Shop.MaxQuantity,
		),
		Color: 0x5865F2,
	}, nil
}

func shopButtons() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Buy 2", Style: discordgo.PrimaryButton, CustomID: "shop:buy:2"},
				discordgo.Button{Label: "Buy 5", Style: discordgo.PrimaryButton, CustomID: "shop:buy:5"},
				discordgo.Button{Label: "Buy 10", Style: discordgo.PrimaryButton, CustomID: "shop:buy:10"},
				discordgo.Button{Label: "Custom amount", Style: discordgo.SecondaryButton, CustomID: "shop:buy:custom"},
			},
		},
	}
}

func (b *Bot) handleSetupShop(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.isAdmin(i) {
		respondEphemeral(s, i, emojiCross+" Operator only.")
		return
	}

	embed, err := b.shopEmbed(ctx)
	if err != nil {
		b.logger.Error("failed to build shop embed", "error", err)
		respondEphemeral(s, i, emojiCross+" Failed to load stock.")
		return
	}

	if _, err := s.ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: shopButtons(),
	}); err != nil {
		b.logger.Error("failed to post shop panel", "error", err)
		respondEphemeral(s, i, emojiCross+" Failed to post the shop panel.")
		return
	}
	respondEphemeral(s, i, emojiTick+" Shop panel posted.")
}

func (b *Bot) handleShop(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	embed, err := b.shopEmbed(ctx)
	if err != nil {
		b.logger.Error("failed to build shop embed", "error", err)
		respondEphemeral(s, i, emojiCross+" Failed to load stock.")
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: shopButtons(),
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.logger.Error("failed to respond with shop panel", "error", err)
	}
}

// handleOrders lists the caller's recent orders, newest first, ephemeral.
func (b *Bot) handleOrders(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	buyer := interactionUser(i)
	if buyer == nil {
		return
	}

	items, err := b.orders.ListRecentByBuyer(ctx, buyer.ID, 10)
	if err != nil {
		b.logger.Error("failed to list orders", "error", err, "buyer_id", buyer.ID)
		respondEphemeral(s, i, emojiCross+" Failed to load your orders.")
		return
	}
	if len(items) == 0 {
		respondEphemeral(s, i, emojiBox+" You have no orders yet. Use /shop to place one.")
		return
	}

	var sb strings.Builder
	for _, item := range items {
		fmt.Fprintf(&sb, "%s ×%d for %s — %s (<t:%d:R>)\n",
			orderStatusEmoji(item.Status), item.Quantity,
			formatCents(item.TotalPriceCents), item.Status, item.CreatedAt.Unix())
	}
	respondEphemeral(s, i, "📋 Your recent orders:\n"+sb.String())
}

func orderStatusEmoji(status string) string {
	switch status {
	case "completed":
		return emojiTick
	case "rejected":
		return emojiCross
	default:
		return "⏳"
	}
}

// handleBuyButton opens the gift-card modal. The quantity rides in the modal
// custom id ("custom" defers it to a quantity field inside the modal, since
// a modal cannot be chained after another modal).
func (b *Bot) handleBuyButton(_ context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, qty string) {
	components := []discordgo.MessageComponent{}

	if qty == "custom" {
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    "quantity",
					Label:       fmt.Sprintf("Quantity (%d-%d)", b.cfg.Shop.MinQuantity, b.cfg.Shop.MaxQuantity),
					Style:       discordgo.TextInputShort,
					Required:    true,
					MaxLength:   4,
					Placeholder: strconv.Itoa(b.cfg.Shop.MinQuantity),
				},
			},
		})
	}

	components = append(components,
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    "card_type",
					Label:       "Gift card type",
					Style:       discordgo.TextInputShort,
					Required:    true,
					MaxLength:   32,
					Placeholder: "amazon / google play / visa",
				},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:  "card_code",
					Label:     "Gift card code",
					Style:     discordgo.TextInputShort,
					Required:  true,
					MaxLength: 64,
				},
			},
		},
	)

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   "giftcard:" + qty,
			Title:      "Gift card payment",
			Components: components,
		},
	})
	if err != nil {
		b.logger.Error("failed to open gift card modal", "error", err)
	}
}

func (b *Bot) handleGiftCardSubmit(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, qtyRaw string) {
	fields := modalValues(i.ModalSubmitData())

	if qtyRaw == "custom" {
		qtyRaw = fields["quantity"]
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(qtyRaw))
	if err != nil {
		respondEphemeral(s, i, emojiCross+" Quantity must be a number.")
		return
	}

	buyer := interactionUser(i)
	result, err := b.purchase.CreatePurchase(ctx, commands.CreatePurchaseInput{
		BuyerID:      buyer.ID,
		BuyerName:    buyer.Username,
		Quantity:     quantity,
		CardTypeRaw:  fields["card_type"],
		GiftCardCode: fields["card_code"],
	})
	if err != nil {
		respondEphemeral(s, i, b.purchaseErrorMessage(err))
		return
	}

	respondEphemeral(s, i, fmt.Sprintf(
		emojiTick+" Order placed: **%d** accounts for **%s**.\n"+
			"%d accounts are held for you while an operator verifies the gift card. You'll get a DM once it's approved.",
		result.Quantity, formatCents(result.TotalPriceCents), result.ReservedCount,
	))

	b.postApprovalRequest(s, result, buyer)
}

func (b *Bot) purchaseErrorMessage(err error) string {
	switch {
	case errors.Is(err, commands.ErrInvalidQuantity):
		return fmt.Sprintf(emojiCross+" Quantity must be between %d and %d.", b.cfg.Shop.MinQuantity, b.cfg.Shop.MaxQuantity)
	case errors.Is(err, commands.ErrInvalidGiftCard):
		return emojiCross + " That gift card code doesn't look valid. Check the type and code and try again."
	case errors.Is(err, commands.ErrInsufficientStock):
		return emojiBox + " Not enough stock right now. Try a smaller amount or come back later."
	default:
		b.logger.Error("purchase failed", "error", err)
		return emojiCross + " Something went wrong placing the order. Please try again."
	}
}

// modalValues flattens a modal submission into a customID -> value map.
func modalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string)
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range actionsRow.Components {
			if input, ok := comp.(*discordgo.TextInput); ok {
				values[input.CustomID] = input.Value
			}
		}
	}
	return values
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

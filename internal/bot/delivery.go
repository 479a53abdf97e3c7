package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"account-shop/internal/usecase/commands"

	"github.com/bwmarrin/discordgo"
)

// deliverCredentials tries the buyer's DMs first and falls back to a private
// ticket channel when DMs are closed. The payload is never dropped: if both
// paths fail the admin channel gets the full text so the operator can hand
// it over manually. Returns whether the DM succeeded.
func (b *Bot) deliverCredentials(ctx context.Context, s *discordgo.Session, result *commands.ApproveResult) bool {
	payload := b.credentialsMessage(ctx, result)

	dm, err := s.UserChannelCreate(result.BuyerID)
	if err == nil {
		if _, err = s.ChannelMessageSend(dm.ID, payload); err == nil {
			return true
		}
	}
	b.logger.Warn("DM delivery failed, opening ticket channel", "error", err, "order_id", result.OrderID)

	channel, err := b.createTicketChannel(s, result)
	if err != nil {
		b.logger.Error("ticket channel creation failed", "error", err, "order_id", result.OrderID)
		// 最終手段: 管理チャンネルに全文を残す
		if _, err := s.ChannelMessageSend(b.cfg.Discord.AdminChannelID,
			"⚠️ Could not reach the buyer. Deliver manually:\n"+payload); err != nil {
			b.logger.Error("failed to post manual delivery notice", "error", err, "order_id", result.OrderID)
		}
		return false
	}

	if _, err := s.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Content: fmt.Sprintf("<@%s> your DMs are closed, so your order is delivered here.\n\n%s", result.BuyerID, payload),
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{Label: "Close ticket", Style: discordgo.SecondaryButton, CustomID: "ticket:close"},
				},
			},
		},
	}); err != nil {
		b.logger.Error("failed to post credentials in ticket", "error", err, "order_id", result.OrderID)
		return false
	}

	if err := b.purchase.AttachTicketChannel(ctx, result.OrderID, channel.ID); err != nil {
		b.logger.Error("failed to record ticket channel", "error", err, "order_id", result.OrderID)
	}
	return false
}

func (b *Bot) credentialsMessage(ctx context.Context, result *commands.ApproveResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, emojiTick+" Your order of **%d** accounts is approved.\n```\n", result.Quantity)
	for _, c := range result.Credentials {
		fmt.Fprintf(&sb, "%s:%s\n", c.Email, c.Password)
	}
	sb.WriteString("```\n")
	sb.WriteString(b.cryptoRatesFooter(ctx))
	return sb.String()
}

// cryptoRatesFooter renders optional crypto payment info for follow-up
// orders. Strictly cosmetic: a failed fetch degrades to a contact hint.
func (b *Bot) cryptoRatesFooter(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	prices, err := b.rates.SpotPrices(ctx, []string{"bitcoin", "ethereum", "monero"})
	if err != nil || len(prices) == 0 {
		return "_For crypto payment on future orders, contact the operator._"
	}

	parts := make([]string, 0, 3)
	for _, coin := range []struct{ id, symbol string }{
		{"bitcoin", "BTC"}, {"ethereum", "ETH"}, {"monero", "XMR"},
	} {
		if p, ok := prices[coin.id]; ok {
			parts = append(parts, fmt.Sprintf("%s $%.2f", coin.symbol, p))
		}
	}
	return "_Crypto also accepted on future orders (" + strings.Join(parts, " · ") + ")._"
}

// createTicketChannel opens a channel only the buyer, the operator and the
// bot can see.
func (b *Bot) createTicketChannel(s *discordgo.Session, result *commands.ApproveResult) (*discordgo.Channel, error) {
	name := fmt.Sprintf("%s-%s", b.cfg.Discord.ShopChannelName, strings.ToLower(result.BuyerName))

	overwrites := []*discordgo.PermissionOverwrite{
		{
			ID:   b.cfg.Discord.GuildID, // @everyone
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionViewChannel,
		},
		{
			ID:    result.BuyerID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages | discordgo.PermissionReadMessageHistory,
		},
		{
			ID:    b.cfg.Discord.AdminUserID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages | discordgo.PermissionReadMessageHistory,
		},
		{
			ID:    s.State.User.ID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages | discordgo.PermissionReadMessageHistory,
		},
	}

	return s.GuildChannelCreateComplex(b.cfg.Discord.GuildID, discordgo.GuildChannelCreateData{
		Name:                 name,
		Type:                 discordgo.ChannelTypeGuildText,
		ParentID:             b.cfg.Discord.TicketCategoryID,
		PermissionOverwrites: overwrites,
	})
}

func (b *Bot) handleTicketClose(_ context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: "Closing this ticket."},
	})
	if err != nil {
		b.logger.Error("failed to ack ticket close", "error", err)
	}

	if _, err := s.ChannelDelete(i.ChannelID); err != nil {
		b.logger.Error("failed to delete ticket channel", "error", err, "channel_id", i.ChannelID)
	}
}

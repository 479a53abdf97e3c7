package bot

import (
	"context"
	"errors"
	"fmt"

	"account-shop/internal/usecase/commands"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

// approvalRequestEmbed is everything the operator needs to verify payment by
// hand. The card code must be here verbatim; the type alone proves nothing.
func approvalRequestEmbed(result *commands.PurchaseResult, buyer *discordgo.User) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "💳 Gift card verification needed",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Buyer", Value: fmt.Sprintf("%s (<@%s>)", buyer.Username, buyer.ID), Inline: true},
			{Name: "Quantity", Value: fmt.Sprintf("%d", result.Quantity), Inline: true},
			{Name: "Total", Value: formatCents(result.TotalPriceCents), Inline: true},
			{Name: "Card type", Value: result.CardType.DisplayName(), Inline: true},
			{Name: "Card code", Value: "`" + result.CardCode + "`", Inline: false},
			{Name: "Order", Value: result.OrderID.String(), Inline: false},
		},
		Color: 0xFEE75C,
	}
}

// postApprovalRequest drops the verification embed in the admin channel. The
// order id rides in the button custom ids; no other state is needed to act
// on it later.
func (b *Bot) postApprovalRequest(s *discordgo.Session, result *commands.PurchaseResult, buyer *discordgo.User) {
	embed := approvalRequestEmbed(result, buyer)

	_, err := s.ChannelMessageSendComplex(b.cfg.Discord.AdminChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{Label: "Approve", Style: discordgo.SuccessButton, CustomID: "order:approve:" + result.OrderID.String()},
					discordgo.Button{Label: "Reject", Style: discordgo.DangerButton, CustomID: "order:reject:" + result.OrderID.String()},
				},
			},
		},
	})
	if err != nil {
		// 注文自体は成立している。承認は /stats や DB から追える
		b.logger.Error("failed to post approval request", "error", err, "order_id", result.OrderID)
	}
}

func (b *Bot) handleApprove(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, orderIDRaw string) {
	if !b.isAdmin(i) {
		respondEphemeral(s, i, emojiCross+" Operator only.")
		return
	}
	orderID, err := uuid.Parse(orderIDRaw)
	if err != nil {
		respondEphemeral(s, i, emojiCross+" Malformed order id.")
		return
	}

	result, err := b.approval.Approve(ctx, orderID)
	if err != nil {
		respondEphemeral(s, i, b.approvalErrorMessage(err))
		return
	}

	delivered := b.deliverCredentials(ctx, s, result)

	status := emojiTick + " Approved and delivered by DM."
	if !delivered {
		status = emojiTick + " Approved. DM failed, credentials posted in a ticket channel."
	}
	b.updateApprovalMessage(s, i, status, 0x57F287)
}

// handleRejectButton asks for a reason before finalizing. The order id is
// threaded through the modal custom id.
func (b *Bot) handleRejectButton(_ context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, orderIDRaw string) {
	if !b.isAdmin(i) {
		respondEphemeral(s, i, emojiCross+" Operator only.")
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: "reject:" + orderIDRaw,
			Title:    "Reject order",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:  "reason",
							Label:     "Reason shown to the buyer",
							Style:     discordgo.TextInputParagraph,
							Required:  true,
							MaxLength: 500,
						},
					},
				},
			},
		},
	})
	if err != nil {
		b.logger.Error("failed to open reject modal", "error", err)
	}
}

func (b *Bot) handleRejectSubmit(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, orderIDRaw string) {
	if !b.isAdmin(i) {
		respondEphemeral(s, i, emojiCross+" Operator only.")
		return
	}
	orderID, err := uuid.Parse(orderIDRaw)
	if err != nil {
		respondEphemeral(s, i, emojiCross+" Malformed order id.")
		return
	}

	reason := modalValues(i.ModalSubmitData())["reason"]
	result, err := b.approval.Reject(ctx, orderID, reason)
	if err != nil {
		respondEphemeral(s, i, b.approvalErrorMessage(err))
		return
	}

	b.notifyRejection(s, result)
	b.updateApprovalMessage(s, i, emojiCross+" Rejected: "+reason, 0xED4245)
}

func (b *Bot) approvalErrorMessage(err error) string {
	switch {
	case errors.Is(err, commands.ErrOrderNotFound):
		return emojiCross + " Unknown order."
	case errors.Is(err, commands.ErrOrderAlreadyFinalized):
		return "⚠️ This order was already processed."
	case errors.Is(err, commands.ErrReservationNotActive):
		return "⚠️ The hold on this order expired; nothing was consumed. Ask the buyer to order again."
	default:
		b.logger.Error("approval action failed", "error", err)
		return emojiCross + " Something went wrong. Nothing was changed."
	}
}

// finalizeApprovalEmbeds stamps the outcome onto the admin embed. Paired
// with clearing the components so terminal orders lose their buttons.
func finalizeApprovalEmbeds(embeds []*discordgo.MessageEmbed, status string, color int) []*discordgo.MessageEmbed {
	if len(embeds) > 0 {
		embeds[0].Color = color
		embeds[0].Footer = &discordgo.MessageEmbedFooter{Text: status}
	}
	return embeds
}

// updateApprovalMessage rewrites the admin embed in place so the buttons
// disappear once the order is terminal. Works for button presses and for
// modal submits, both of which carry the source message.
func (b *Bot) updateApprovalMessage(s *discordgo.Session, i *discordgo.InteractionCreate, status string, color int) {
	if i.Message == nil {
		respondEphemeral(s, i, status)
		return
	}
	embeds := finalizeApprovalEmbeds(i.Message.Embeds, status, color)

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     embeds,
			Components: []discordgo.MessageComponent{},
		},
	})
	if err != nil {
		b.logger.Error("failed to update approval message", "error", err)
	}
}

func (b *Bot) notifyRejection(s *discordgo.Session, result *commands.RejectResult) {
	msg := fmt.Sprintf(emojiCross+" Your order was rejected.\nReason: %s", result.Reason)

	dm, err := s.UserChannelCreate(result.BuyerID)
	if err == nil {
		if _, err = s.ChannelMessageSend(dm.ID, msg); err == nil {
			return
		}
	}
	b.logger.Warn("failed to DM rejection notice", "error", err, "order_id", result.OrderID)
}

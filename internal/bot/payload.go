package bot

import (
	"encoding/json"
	"fmt"

	"shopbot/internal/dto"
)

// Action is the closed set of things the web app asks the bot to do. Anything
// else parses to ActionUnknown so new client versions degrade loudly instead
// of being dropped on the floor.
type Action string

const (
	ActionOrder       Action = "order"
	ActionSaveCart    Action = "saveCart"
	ActionGetUserData Action = "getUserData"
	ActionUnknown     Action = "unknown"
)

// WebAppPayload is the parsed web-app data message. Exactly one of the
// optional fields is set, matching Action.
type WebAppPayload struct {
	Action Action
	// Raw is the action string as sent, kept for logging unknown actions.
	Raw   string
	Order *dto.OrderRequest
	Cart  []dto.CartLineDTO
}

func ParseWebAppPayload(data string) (WebAppPayload, error) {
	var envelope struct {
		Action         string            `json:"action"`
		Cart           []dto.CartLineDTO `json:"cart"`
		UserData       dto.ContactDTO    `json:"userData"`
		DeliveryMethod string            `json:"deliveryMethod"`
		TotalAmount    int64             `json:"totalAmount"`
	}
	if err := json.Unmarshal([]byte(data), &envelope); err != nil {
		return WebAppPayload{}, fmt.Errorf("parsing web app payload: %w", err)
	}

	switch Action(envelope.Action) {
	case ActionOrder:
		return WebAppPayload{
			Action: ActionOrder,
			Raw:    envelope.Action,
			Order: &dto.OrderRequest{
				Cart:           envelope.Cart,
				UserData:       envelope.UserData,
				DeliveryMethod: envelope.DeliveryMethod,
				TotalAmount:    envelope.TotalAmount,
			},
		}, nil
	case ActionSaveCart:
		return WebAppPayload{
			Action: ActionSaveCart,
			Raw:    envelope.Action,
			Cart:   envelope.Cart,
		}, nil
	case ActionGetUserData:
		return WebAppPayload{Action: ActionGetUserData, Raw: envelope.Action}, nil
	default:
		return WebAppPayload{Action: ActionUnknown, Raw: envelope.Action}, nil
	}
}

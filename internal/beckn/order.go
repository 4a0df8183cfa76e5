package beckn

import "ondc-seller-adapter/internal/model"

// Beckn order states for the seller-side lifecycle.
const (
	OrderStateAccepted = "Accepted"
	fulfillmentPending = "Pending"
)

var orderStates = map[string]string{
	model.OrderStatusPending:    "Pending",
	model.OrderStatusProcessing: "In-progress",
	model.OrderStatusCompleted:  "Completed",
	model.OrderStatusCancelled:  "Cancelled",
}

// OrderState maps an internal order status to its Beckn order state.
// Unknown statuses map to Pending.
func OrderState(status string) string {
	if state, ok := orderStates[status]; ok {
		return state
	}
	return "Pending"
}

// DeliveryFulfillment returns the standard delivery fulfillment block
// quoted in on_select responses.
func DeliveryFulfillment() model.Fulfillment {
	return model.Fulfillment{
		Type:     "Delivery",
		Tracking: false,
		TAT:      timeToShip,
		Category: "Standard Delivery",
	}
}

// PendingFulfillment returns a fulfillment block for a freshly accepted
// order, carrying the newly minted fulfillment id.
func PendingFulfillment(id string) model.Fulfillment {
	return model.Fulfillment{
		ID:       id,
		Type:     "Delivery",
		Tracking: false,
		State:    &model.FulfillmentState{Descriptor: model.StateDescriptor{Code: fulfillmentPending}},
		TAT:      timeToShip,
	}
}

// StateFulfillment returns a fulfillment block reporting the given
// Beckn state, as carried in on_status messages.
func StateFulfillment(state string) model.Fulfillment {
	return model.Fulfillment{
		State: &model.FulfillmentState{Descriptor: model.StateDescriptor{Code: state}},
	}
}

// SellerPayment returns the seller's payment and settlement terms
// attached at init time.
func SellerPayment(upiAddress string) model.Payment {
	return model.Payment{
		Type:            "ON-ORDER",
		CollectedBy:     "BAP",
		FinderFeeType:   "percent",
		FinderFeeAmount: "3",
		SettlementDetails: []model.SettlementDetail{
			{
				SettlementCounterparty:  "seller-app",
				SettlementType:          "upi",
				UPIAddress:              upiAddress,
				SettlementBankAccountNo: "XXXXXXXXXX",
				SettlementIFSCCode:      "XXXXXX",
			},
		},
	}
}

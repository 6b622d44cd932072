// internal/models/status.go
package models

// statusPriority is the fixed business ordering used to pick the single label
// shown in summary views when several statuses are active at once. Terminal
// and delivery states outrank production, which outranks design and quoting.
// ON_HOLD deliberately sits below ENQUIRY; display parity with the existing
// UI depends on this exact order.
var statusPriority = []StatusLabel{
	StatusCancelled,
	StatusDelivered,
	StatusOutForDelivery,
	StatusReadyForDelivery,
	StatusInProduction,
	StatusQualityCheck,
	StatusPaymentReceived,
	StatusMaterialsInStock,
	StatusDesignApproved,
	StatusInDesign,
	StatusDesignProofing,
	StatusDesignBrief,
	StatusQuoteApproved,
	StatusQuoteSent,
	StatusEnquiry,
	StatusOnHold,
}

// MainStatus selects one label to represent an order's overall phase.
// Inactive rows are ignored. If no prioritized label is active the first
// remaining active label wins, and an empty set resolves to ENQUIRY.
func MainStatus(statuses []OrderStatus) StatusLabel {
	active := make([]StatusLabel, 0, len(statuses))
	for _, s := range statuses {
		if s.IsActive {
			active = append(active, s.Status)
		}
	}

	for _, candidate := range statusPriority {
		for _, label := range active {
			if label == candidate {
				return candidate
			}
		}
	}

	if len(active) > 0 {
		return active[0]
	}
	return StatusEnquiry
}

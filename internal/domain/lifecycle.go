package domain

// deliveryTransitions is the forward-only delivery lifecycle. There is no
// backward or cancel edge: once a delivery is Delivered it is terminal.
var deliveryTransitions = map[string][]string{
	DeliveryStatusAssigned:  {DeliveryStatusInTransit},
	DeliveryStatusInTransit: {DeliveryStatusDelivered},
	DeliveryStatusDelivered: {},
}

func CanTransitionDelivery(from string, to string) bool {
	for _, allowed := range deliveryTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// OrderStatusForDelivery maps a delivery status to the order status that
// must mirror it after the transition commits.
func OrderStatusForDelivery(deliveryStatus string) string {
	switch deliveryStatus {
	case DeliveryStatusAssigned, DeliveryStatusInTransit:
		return OrderStatusOutForDelivery
	case DeliveryStatusDelivered:
		return OrderStatusDelivered
	default:
		return ""
	}
}

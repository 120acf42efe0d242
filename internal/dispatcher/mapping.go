package dispatcher

import (
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/events"
)

// BuildNotifications чистое отображение совершённого перехода в ноль, одно
// или два уведомления (для пользователя и для операторов).
// Переход в requested уведомлений не порождает.
func BuildNotifications(ev events.TransitionEvent) []domain.Notification {
	result := make([]domain.Notification, 0, 2)

	appendRequester := func(category domain.NotificationCategory, title, body string) {
		userID := ev.UserID
		result = append(result, domain.Notification{
			RefID:        ev.ReservationID,
			TargetUserID: &userID,
			Audience:     domain.AudienceRequester,
			Category:     category,
			Title:        title,
			Body:         body,
			CreatedAt:    ev.OccurredAt,
		})
	}
	appendOperations := func(category domain.NotificationCategory, title, body string) {
		result = append(result, domain.Notification{
			RefID:     ev.ReservationID,
			Audience:  domain.AudienceOperations,
			Category:  category,
			Title:     title,
			Body:      body,
			CreatedAt: ev.OccurredAt,
		})
	}

	switch ev.NewStatus {
	case domain.StatusPaymentPending:
		appendRequester(domain.CategorySuccess, "Approved",
			fmt.Sprintf("Reservation #%d has been approved. Complete payment within 30 minutes.", ev.ReservationID))
		appendOperations(domain.CategorySuccess, "Approved",
			fmt.Sprintf("Reservation #%d approved, awaiting payment.", ev.ReservationID))

	case domain.StatusPaid:
		appendRequester(domain.CategorySuccess, "Payment confirmed",
			fmt.Sprintf("Payment for reservation #%d has been verified. See you on the court!", ev.ReservationID))
		appendOperations(domain.CategorySuccess, "Payment verified",
			fmt.Sprintf("Payment for reservation #%d has been verified.", ev.ReservationID))

	case domain.StatusCancelled:
		switch ev.Actor {
		case events.ActorOperator:
			appendRequester(domain.CategoryError, fmt.Sprintf("Rejected: %s", ev.Reason),
				fmt.Sprintf("Reservation #%d was rejected. Reason: %s", ev.ReservationID, ev.Reason))
			appendOperations(domain.CategoryError, "Rejected",
				fmt.Sprintf("Reservation #%d was rejected: %s", ev.ReservationID, ev.Reason))

		case events.ActorRequester:
			// Пользователь сам отменил - уведомляем только операторов
			appendOperations(domain.CategoryInfo, "Cancelled by requester",
				fmt.Sprintf("Reservation #%d was cancelled by the requester.", ev.ReservationID))

		case events.ActorSystem:
			appendRequester(domain.CategoryError, "Payment window expired",
				fmt.Sprintf("Reservation #%d was cancelled: payment was not received within 30 minutes.", ev.ReservationID))
			appendOperations(domain.CategoryError, "Expired",
				fmt.Sprintf("Reservation #%d expired without payment.", ev.ReservationID))
		}
	}

	return result
}

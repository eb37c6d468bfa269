package view

// Badge es la etiqueta de estado que acompaña una fila.
type Badge struct {
	Label string `json:"label"`
	Tone  string `json:"tone"`
}

// MatchBadge mapea el estado de un partido a su insignia.
func MatchBadge(status string, validated bool) Badge {
	switch status {
	case "PENDING":
		return Badge{Label: "Pendiente", Tone: "warning"}
	case "COMPLETED":
		if validated {
			return Badge{Label: "Validado", Tone: "success"}
		}
		return Badge{Label: "Finalizado", Tone: "info"}
	case "CANCELLED":
		return Badge{Label: "Cancelado", Tone: "danger"}
	default:
		return Badge{Label: status, Tone: "neutral"}
	}
}

// PendingBadge mapea la bandera validated de una entidad pendiente.
func PendingBadge(validated bool) Badge {
	if validated {
		return Badge{Label: "Validado", Tone: "success"}
	}
	return Badge{Label: "Pendiente", Tone: "warning"}
}

// EventIcon devuelve el icono de un evento de partido.
func EventIcon(eventType string, detail *string) string {
	if eventType == "GOL" {
		return "⚽"
	}
	if eventType == "TARJETA" {
		if detail != nil && *detail == "ROJA" {
			return "🟥"
		}
		return "🟨"
	}
	return ""
}

package services

// ReservationStatus is the canonical lifecycle state of a reservation.
// Callers may send any accepted synonym; the service normalizes it here and
// only ever persists and reports the canonical value.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pendente"
	StatusActive    ReservationStatus = "ativa"
	StatusCompleted ReservationStatus = "concluida"
	StatusCancelled ReservationStatus = "cancelada"
)

// statusSynonyms maps every accepted spelling to its canonical state. Raw
// synonym strings never travel past this table.
var statusSynonyms = map[string]ReservationStatus{
	"pendente":     StatusPending,
	"confirmado":   StatusPending,
	"confirmada":   StatusPending,
	"ativa":        StatusActive,
	"ativo":        StatusActive,
	"em_andamento": StatusActive,
	"concluida":    StatusCompleted,
	"concluido":    StatusCompleted,
	"finalizado":   StatusCompleted,
	"cancelada":    StatusCancelled,
	"cancelado":    StatusCancelled,
}

// NormalizeStatus resolves a caller-supplied status string to its canonical
// state. ok is false when the value is not an accepted synonym.
func NormalizeStatus(raw string) (ReservationStatus, bool) {
	st, ok := statusSynonyms[raw]
	return st, ok
}

// synonymsOf returns every accepted spelling of a canonical state, for IN
// filters over rows that may predate normalization.
func synonymsOf(canonical ReservationStatus) []string {
	out := make([]string, 0, 3)
	for raw, st := range statusSynonyms {
		if st == canonical {
			out = append(out, raw)
		}
	}
	return out
}

// cancelledStatuses is used in NOT IN clauses: every query that cares about
// "live" reservations must skip all spellings of cancelled.
func cancelledStatuses() []string {
	return synonymsOf(StatusCancelled)
}

// blockingStatuses are the states that pin a room or client against deletion.
// Completed stays are history and do not block.
func blockingStatuses() []string {
	return append(synonymsOf(StatusPending), synonymsOf(StatusActive)...)
}

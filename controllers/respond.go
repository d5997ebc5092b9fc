package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pousada-backend/services"
)

type errorMapping struct {
	status  int
	code    string
	message string
}

// serviceErrorMappings translates every service sentinel into a transport
// response: not-found -> 404, conflicts -> 409, bad input -> 400.
var serviceErrorMappings = []struct {
	err     error
	mapping errorMapping
}{
	{services.ErrRoomNotFound, errorMapping{http.StatusNotFound, "error.roomNotFound", "Quarto não encontrado"}},
	{services.ErrReservationNotFound, errorMapping{http.StatusNotFound, "error.reservationNotFound", "Reserva não encontrada"}},
	{services.ErrClientNotFound, errorMapping{http.StatusNotFound, "error.clientNotFound", "Cliente não encontrado"}},
	{services.ErrDuplicateRoomNumber, errorMapping{http.StatusConflict, "error.duplicateRoomNumber", "Já existe um quarto com esse número"}},
	{services.ErrDuplicateClient, errorMapping{http.StatusConflict, "error.duplicateClient", "Email ou documento já cadastrado"}},
	{services.ErrRoomHasActiveReservations, errorMapping{http.StatusConflict, "error.roomHasActiveReservations", "Não é possível remover o quarto com reservas ativas"}},
	{services.ErrClientHasActiveReservations, errorMapping{http.StatusConflict, "error.clientHasActiveReservations", "Não é possível remover o cliente com reservas ativas"}},
	{services.ErrRoomUnavailable, errorMapping{http.StatusConflict, "error.roomUnavailable", "O quarto não está disponível para as datas selecionadas"}},
	{services.ErrInvalidStatusTransition, errorMapping{http.StatusConflict, "error.invalidStatusTransition", "A reserva não permite essa mudança de status"}},
	{services.ErrInvalidDateRange, errorMapping{http.StatusBadRequest, "error.invalidDateRange", "A data de check-out deve ser posterior à data de check-in"}},
	{services.ErrInvalidStatus, errorMapping{http.StatusBadRequest, "error.invalidStatus", "Status de reserva inválido"}},
	{services.ErrInvalidRoomType, errorMapping{http.StatusBadRequest, "error.invalidRoomType", "Tipo de quarto inválido"}},
	{services.ErrInvalidRoomStatus, errorMapping{http.StatusBadRequest, "error.invalidRoomStatus", "Status de quarto inválido"}},
	{services.ErrInvalidRoomNumber, errorMapping{http.StatusBadRequest, "error.invalidRoomNumber", "Número de quarto é obrigatório"}},
	{services.ErrInvalidCapacity, errorMapping{http.StatusBadRequest, "error.invalidCapacity", "Capacidade deve ser positiva"}},
	{services.ErrInvalidDailyRate, errorMapping{http.StatusBadRequest, "error.invalidDailyRate", "Valor da diária não pode ser negativo"}},
	{services.ErrInvalidMonthFilter, errorMapping{http.StatusBadRequest, "error.invalidMonthFilter", "Parâmetro 'mes' inválido. Use o formato YYYY-MM"}},
}

// respondServiceError writes the mapped response for a typed service error,
// or a 500 for anything unexpected.
func respondServiceError(c *gin.Context, err error) {
	for _, entry := range serviceErrorMappings {
		if errors.Is(err, entry.err) {
			c.JSON(entry.mapping.status, gin.H{
				"error": gin.H{
					"code":    entry.mapping.code,
					"message": entry.mapping.message,
				},
			})
			return
		}
	}

	log.Printf("unexpected service error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{
			"code":    "error.internal",
			"message": "Erro interno do servidor",
		},
	})
}

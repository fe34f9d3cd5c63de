package settings

import (
	"bufio"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"vnts-backend/internal/database"
	"vnts-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

// NormalizeHexColor acepta "2563EB", "#2563eb" o la forma corta "#25e" y
// devuelve siempre "#rrggbb" en minúsculas.
func NormalizeHexColor(raw string) (string, error) {
	color := strings.ToLower(strings.TrimSpace(raw))
	if color == "" {
		return "", fmt.Errorf("color vacío")
	}
	if !strings.HasPrefix(color, "#") {
		color = "#" + color
	}
	if len(color) == 4 {
		color = fmt.Sprintf("#%c%c%c%c%c%c", color[1], color[1], color[2], color[2], color[3], color[3])
	}
	if !hexColorPattern.MatchString(color) {
		return "", fmt.Errorf("color inválido: %q", raw)
	}
	return color, nil
}

type UpdateSettingRequest struct {
	Value string `json:"value"`
}

// GET /api/settings
func ListSettingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.AppSetting
		if err := database.DB.Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cargar la configuración")
		}

		res := make(map[string]string, len(rows))
		for _, r := range rows {
			res[r.Key] = r.Value
		}
		return c.JSON(res)
	}
}

// PUT /api/settings/:key
// Tras guardar, el nuevo valor se publica a todos los clientes SSE conectados.
func UpdateSettingHandler(b *Broadcaster) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("key")

		var body UpdateSettingRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		value := strings.TrimSpace(body.Value)
		if key == models.SettingPrimaryColor {
			normalized, err := NormalizeHexColor(value)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "El color debe tener formato hexadecimal, por ejemplo #2563eb")
			}
			value = normalized
		}
		if value == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El valor no puede estar vacío")
		}

		var setting models.AppSetting
		if err := database.DB.First(&setting, "key = ?", key).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Configuración no encontrada")
		}

		setting.Value = value
		if err := database.DB.Save(&setting).Error; err != nil {
			log.Errorf("Error al guardar configuración %s: %v", key, err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar la configuración")
		}

		b.Publish(SettingEvent{Key: setting.Key, Value: setting.Value})
		return c.JSON(setting)
	}
}

// GET /api/settings/stream (SSE)
// Envía el estado actual al conectar y luego cada cambio publicado. Un ping
// periódico mantiene viva la conexión y detecta clientes desaparecidos.
func StreamSettingsHandler(b *Broadcaster) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.AppSetting
		if err := database.DB.Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cargar la configuración")
		}

		c.Set("Content-Type", "text/event-stream")
		c.Set("Cache-Control", "no-cache")
		c.Set("Connection", "keep-alive")

		ch := b.Subscribe()
		c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
			defer b.Unsubscribe(ch)

			for _, r := range rows {
				if !writeEvent(w, SettingEvent{Key: r.Key, Value: r.Value}) {
					return
				}
			}

			ticker := time.NewTicker(25 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case ev, ok := <-ch:
					if !ok {
						return
					}
					if !writeEvent(w, ev) {
						return
					}
				case <-ticker.C:
					fmt.Fprint(w, ": ping\n\n")
					if err := w.Flush(); err != nil {
						return
					}
				}
			}
		})
		return nil
	}
}

func writeEvent(w *bufio.Writer, ev SettingEvent) bool {
	data, err := json.Marshal(ev)
	if err != nil {
		return false
	}
	fmt.Fprintf(w, "event: setting\ndata: %s\n\n", data)
	return w.Flush() == nil
}

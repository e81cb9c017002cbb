package health

import (
	"net/http"

	"github.com/develophasan/SlotyPi/pkg/resp"
)

func Health(w http.ResponseWriter, _ *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, map[string]bool{"ok": true})
}

package handler

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"
)

// params хранит объединенные значения запроса: JSON-объект тела для
// application/json, иначе form- и query-параметры.
type params map[string]interface{}

func parseRequest(r *http.Request) params {
	ct := r.Header.Get("Content-Type")
	if strings.Contains(strings.ToLower(ct), "application/json") {
		p := params{}
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			return params{} // битый JSON приравнивается к пустому запросу
		}
		return p
	}
	r.ParseForm()
	p := make(params, len(r.Form))
	for k, vs := range r.Form {
		if len(vs) > 0 {
			p[k] = vs[0]
		}
	}
	return p
}

func (p params) Str(key string) (string, bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (p params) Int64(key string) (int64, bool) {
	v, ok := p[key]
	if !ok {
		return 0, false
	}
	return toInt64(v)
}

func (p params) Int(key string) (int, bool) {
	n, ok := p.Int64(key)
	return int(n), ok
}

// Bool разбирает строгое булево значение; всё нераспознанное считается
// отсутствующим.
func (p params) Bool(key string) (bool, bool) {
	v, ok := p[key]
	if !ok {
		return false, false
	}
	switch t := v.(type) {
	case bool:
		return t, true
	case float64:
		if t == 1 {
			return true, true
		}
		if t == 0 {
			return false, true
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "1", "true", "on", "yes":
			return true, true
		case "0", "false", "off", "no", "":
			return false, true
		}
	}
	return false, false
}

func (p params) List(key string) ([]interface{}, bool) {
	v, ok := p[key]
	if !ok {
		return nil, false
	}
	l, ok := v.([]interface{})
	return l, ok
}

func toInt64(v interface{}) (int64, bool) {
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) {
			return 0, false
		}
		return int64(t), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	case int64:
		return t, true
	case int:
		return int64(t), true
	}
	return 0, false
}

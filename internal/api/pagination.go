package api

import (
	"encoding/base64"
	"fmt"
	"strconv"
)

func EncodeCursor(id int64) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.FormatInt(id, 10)))
}

func DecodeCursor(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid cursor format")
	}

	id, err := strconv.ParseInt(string(decoded), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id in cursor")
	}

	return id, nil
}

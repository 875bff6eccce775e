package shared

import (
	"fmt"
	"net/url"
)

type IdBuilder struct {
	Host string
}

func (idb *IdBuilder) ProfileUrl(handle string) string {
	if handle == "" {
		return ""
	}
	return fmt.Sprintf("https://%s/profile/%s", idb.Host, url.PathEscape(handle))
}

func (idb *IdBuilder) DropUrl(id string) string {
	return fmt.Sprintf("https://%s/drops/%s", idb.Host, url.PathEscape(id))
}

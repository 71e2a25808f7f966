package record

import (
	"net/url"
	"strings"
)

// A record reference is a URL of the form
//
//	<base>/rest/apps/<app id>/records/<record id>
//
// as minted by the hosted-forms backend. The grammar is backend-owned; no
// other package may build or take apart reference strings.

// RefMaker builds reference strings against a fixed backend base URL.
type RefMaker struct {
	Base string
}

// Ref returns the reference string for a record of the given app.
// ExtractRecordID(m.Ref(appID, id)) == id holds for every valid id.
func (m RefMaker) Ref(appID, recordID string) string {
	return strings.TrimRight(m.Base, "/") + "/rest/apps/" + appID + "/records/" + recordID
}

// ExtractRecordID returns the bare record id encoded in `ref`, or "" when the
// input does not look like a record reference. It never panics; callers treat
// "" as unresolved.
func ExtractRecordID(ref string) string {
	_, id := splitRef(ref)
	return id
}

// ExtractAppID returns the app id encoded in `ref`, or "" when the input does
// not look like a record reference.
func ExtractAppID(ref string) string {
	appID, _ := splitRef(ref)
	return appID
}

func splitRef(ref string) (appID, recordID string) {
	if ref == "" {
		return "", ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", ""
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	n := len(segs)
	if n < 4 || segs[n-4] != "apps" || segs[n-2] != "records" {
		return "", ""
	}
	if segs[n-3] == "" || segs[n-1] == "" {
		return "", ""
	}
	return segs[n-3], segs[n-1]
}

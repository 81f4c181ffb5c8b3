package warehouse

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/xo/dburl"
)

var DefaultDsnConnectionKeyNames = struct {
	Dsn string
}{
	Dsn: "dsn",
}

// ConnectionDetails holds credentials for a logical warehouse connection.
type ConnectionDetails struct {
	Type        string            `json:"type" errorTxt:"database type" mandatory:"yes" yaml:"type"`
	LogicalName string            `json:"logicalName" errorTxt:"database logical name" mandatory:"yes" yaml:"logicalName"`
	Data        map[string]string `json:"data" yaml:"data"`
}

// String redacts passwords and pretty-prints the contents of ConnectionDetails.
func (c ConnectionDetails) String() string {
	x := make([]string, 0, len(c.Data))
	x = append(x, fmt.Sprintf("  type = %v", c.Type))
	if v, ok := c.Data[DefaultDsnConnectionKeyNames.Dsn]; ok { // if there's a DSN...
		u, err := dburl.Parse(v)
		if err != nil {
			panic(fmt.Sprintf("unexpected error while parsing DSN: %v", err))
		}
		x = append(x, fmt.Sprintf("  dsn = %v", u.Redacted()))
	} else { // else there's no DSN... (could be an S3 connection)
		for k, v := range c.Data {
			if k == "password" {
				v = "xxxxx"
			}
			x = append(x, fmt.Sprintf("  %v = %v", k, v))
		}
	}
	return strings.Join(x, "\n")
}

// DsnConnectionDetails is a simple struct to hold a DSN only.
type DsnConnectionDetails struct {
	Dsn            string `errorTxt:"data source name i.e. connect string" mandatory:"yes"`
	OriginalScheme string
}

// String returns the DSN with redacted password.
func (d DsnConnectionDetails) String() string {
	u, err := dburl.Parse(d.Dsn)
	if err != nil {
		panic(fmt.Sprintf("error parsing DSN %q: %v", d.Dsn, err))
	}
	return u.Redacted()
}

// Parse validates the DSN and saves its scheme for GetScheme.
// Pointer receiver so the saved scheme survives the call.
func (d *DsnConnectionDetails) Parse() error {
	if d.Dsn == "" { // if the Dsn is invalid...
		return errors.New("DSN not found")
	}
	u, err := dburl.Parse(d.Dsn)
	if err != nil {
		return errors.Wrap(err, "DSN could not be parsed")
	}
	d.OriginalScheme = u.OriginalScheme
	return nil
}

func (d *DsnConnectionDetails) GetScheme() (string, error) {
	if d.OriginalScheme == "" {
		if err := d.Parse(); err != nil {
			return "", err
		}
	}
	return d.OriginalScheme, nil
}

func (d DsnConnectionDetails) GetMap(m map[string]string) map[string]string {
	if m == nil {
		m = make(map[string]string)
	}
	m[DefaultDsnConnectionKeyNames.Dsn] = d.Dsn
	return m
}

// GetDsnConnectionDetails converts generic ConnectionDetails to DsnConnectionDetails
// and returns a pointer to the new struct.
func GetDsnConnectionDetails(c *ConnectionDetails) *DsnConnectionDetails {
	return &DsnConnectionDetails{
		Dsn: c.Data[DefaultDsnConnectionKeyNames.Dsn],
	}
}

package schema

import (
	"fmt"
	"strings"

	"github.com/playlake/starload/helper"
)

// JSONFormatAuto asks Redshift to infer the column mapping from the JSON keys.
// The alternative is the S3 URI of a JSONPaths document declaring an explicit mapping.
const JSONFormatAuto = "auto"

const redactedCredential = "xxxxxxx"

// CopyConfig describes one bulk-copy of line-delimited JSON from S3 into a staging relation.
// The IAM role is authorization-only: use RedactedSQL for anything that is logged or printed.
type CopyConfig struct {
	Relation   string `errorTxt:"staging relation name" mandatory:"yes"`
	SourceUri  string `errorTxt:"S3 source URI" mandatory:"yes"`
	IamRole    string `errorTxt:"IAM role ARN" mandatory:"yes"`
	JsonFormat string `errorTxt:"JSON format ('auto' or a jsonpaths URI)" mandatory:"yes"`
	Region     string // optional: set when the bucket is not in the cluster's region.
}

// SQL renders the Redshift COPY statement.
func (c CopyConfig) SQL() string {
	return c.sql(c.IamRole)
}

// RedactedSQL renders the COPY statement with the credential blanked out,
// safe for logs and dry-run output.
func (c CopyConfig) RedactedSQL() string {
	return c.sql(redactedCredential)
}

func (c CopyConfig) sql(role string) string {
	b := strings.Builder{}
	b.WriteString(fmt.Sprintf("COPY %v FROM %v IAM_ROLE %v JSON %v",
		c.Relation, helper.SingleQuote(c.SourceUri), helper.SingleQuote(role), helper.SingleQuote(c.JsonFormat)))
	if c.Region != "" { // if the bucket lives in another region...
		b.WriteString(fmt.Sprintf(" REGION %v", helper.SingleQuote(c.Region)))
	}
	return b.String()
}

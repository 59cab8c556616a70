// utils/http.go
package utils

import (
	"time"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
)

// HTTPClient is shared by the outbound object storage client. It must be a
// BuildableClient: the SDK applies AWS_CA_BUNDLE through WithTransportOptions.
var HTTPClient = awshttp.NewBuildableClient().WithTimeout(60 * time.Second)

package bresp

import (
	"net/http"
	"slices"

	"github.com/samber/lo"
)

// Code mirrors the http status codes. It is used to short-circuit handlers with a status and to pick
// the status of responses.
type Code int

const (
	// CodeDeclined signals that no response is to be produced at all.
	CodeDeclined Code = 0

	CodeContinue           Code = http.StatusContinue           // RFC 9110, 15.2.1
	CodeSwitchingProtocols Code = http.StatusSwitchingProtocols // RFC 9110, 15.2.2
	CodeProcessing         Code = http.StatusProcessing         // RFC 2518, 10.1
	CodeEarlyHints         Code = http.StatusEarlyHints         // RFC 8297

	CodeOK                   Code = http.StatusOK                   // RFC 9110, 15.3.1
	CodeCreated              Code = http.StatusCreated              // RFC 9110, 15.3.2
	CodeAccepted             Code = http.StatusAccepted             // RFC 9110, 15.3.3
	CodeNonAuthoritativeInfo Code = http.StatusNonAuthoritativeInfo // RFC 9110, 15.3.4
	CodeNoContent            Code = http.StatusNoContent            // RFC 9110, 15.3.5
	CodeResetContent         Code = http.StatusResetContent         // RFC 9110, 15.3.6
	CodePartialContent       Code = http.StatusPartialContent       // RFC 9110, 15.3.7
	CodeMultiStatus          Code = http.StatusMultiStatus          // RFC 4918, 11.1
	CodeAlreadyReported      Code = http.StatusAlreadyReported      // RFC 5842, 7.1
	CodeIMUsed               Code = http.StatusIMUsed               // RFC 3229, 10.4.1

	CodeMultipleChoices   Code = http.StatusMultipleChoices   // RFC 9110, 15.4.1
	CodeMovedPermanently  Code = http.StatusMovedPermanently  // RFC 9110, 15.4.2
	CodeFound             Code = http.StatusFound             // RFC 9110, 15.4.3
	CodeSeeOther          Code = http.StatusSeeOther          // RFC 9110, 15.4.4
	CodeNotModified       Code = http.StatusNotModified       // RFC 9110, 15.4.5
	CodeUseProxy          Code = http.StatusUseProxy          // RFC 9110, 15.4.6
	CodeTemporaryRedirect Code = http.StatusTemporaryRedirect // RFC 9110, 15.4.8
	CodePermanentRedirect Code = http.StatusPermanentRedirect // RFC 9110, 15.4.9

	CodeBadRequest                   Code = http.StatusBadRequest                   // RFC 9110, 15.5.1
	CodeUnauthorized                 Code = http.StatusUnauthorized                 // RFC 9110, 15.5.2
	CodePaymentRequired              Code = http.StatusPaymentRequired              // RFC 9110, 15.5.3
	CodeForbidden                    Code = http.StatusForbidden                    // RFC 9110, 15.5.4
	CodeNotFound                     Code = http.StatusNotFound                     // RFC 9110, 15.5.5
	CodeMethodNotAllowed             Code = http.StatusMethodNotAllowed             // RFC 9110, 15.5.6
	CodeNotAcceptable                Code = http.StatusNotAcceptable                // RFC 9110, 15.5.7
	CodeProxyAuthRequired            Code = http.StatusProxyAuthRequired            // RFC 9110, 15.5.8
	CodeRequestTimeout               Code = http.StatusRequestTimeout               // RFC 9110, 15.5.9
	CodeConflict                     Code = http.StatusConflict                     // RFC 9110, 15.5.10
	CodeGone                         Code = http.StatusGone                         // RFC 9110, 15.5.11
	CodeLengthRequired               Code = http.StatusLengthRequired               // RFC 9110, 15.5.12
	CodePreconditionFailed           Code = http.StatusPreconditionFailed           // RFC 9110, 15.5.13
	CodeRequestEntityTooLarge        Code = http.StatusRequestEntityTooLarge        // RFC 9110, 15.5.14
	CodeRequestURITooLong            Code = http.StatusRequestURITooLong            // RFC 9110, 15.5.15
	CodeUnsupportedMediaType         Code = http.StatusUnsupportedMediaType         // RFC 9110, 15.5.16
	CodeRequestedRangeNotSatisfiable Code = http.StatusRequestedRangeNotSatisfiable // RFC 9110, 15.5.17
	CodeExpectationFailed            Code = http.StatusExpectationFailed            // RFC 9110, 15.5.18
	CodeTeapot                       Code = http.StatusTeapot                       // RFC 9110, 15.5.19 (Unused)
	CodeMisdirectedRequest           Code = http.StatusMisdirectedRequest           // RFC 9110, 15.5.20
	CodeUnprocessableEntity          Code = http.StatusUnprocessableEntity          // RFC 9110, 15.5.21
	CodeLocked                       Code = http.StatusLocked                       // RFC 4918, 11.3
	CodeFailedDependency             Code = http.StatusFailedDependency             // RFC 4918, 11.4
	CodeTooEarly                     Code = http.StatusTooEarly                     // RFC 8470, 5.2.
	CodeUpgradeRequired              Code = http.StatusUpgradeRequired              // RFC 9110, 15.5.22
	CodePreconditionRequired         Code = http.StatusPreconditionRequired         // RFC 6585, 3
	CodeTooManyRequests              Code = http.StatusTooManyRequests              // RFC 6585, 4
	CodeRequestHeaderFieldsTooLarge  Code = http.StatusRequestHeaderFieldsTooLarge  // RFC 6585, 5
	CodeConnectionClosedNoResponse   Code = 444                                     // nginx
	CodeUnavailableForLegalReasons   Code = http.StatusUnavailableForLegalReasons   // RFC 7725, 3
	CodeClientClosedRequest          Code = 499                                     // nginx

	CodeInternalServerError           Code = http.StatusInternalServerError           // RFC 9110, 15.6.1
	CodeNotImplemented                Code = http.StatusNotImplemented                // RFC 9110, 15.6.2
	CodeBadGateway                    Code = http.StatusBadGateway                    // RFC 9110, 15.6.3
	CodeServiceUnavailable            Code = http.StatusServiceUnavailable            // RFC 9110, 15.6.4
	CodeGatewayTimeout                Code = http.StatusGatewayTimeout                // RFC 9110, 15.6.5
	CodeHTTPVersionNotSupported       Code = http.StatusHTTPVersionNotSupported       // RFC 9110, 15.6.6
	CodeVariantAlsoNegotiates         Code = http.StatusVariantAlsoNegotiates         // RFC 2295, 8.1
	CodeInsufficientStorage           Code = http.StatusInsufficientStorage           // RFC 4918, 11.5
	CodeLoopDetected                  Code = http.StatusLoopDetected                  // RFC 5842, 7.2
	CodeNotExtended                   Code = http.StatusNotExtended                   // RFC 2774, 7
	CodeNetworkAuthenticationRequired Code = http.StatusNetworkAuthenticationRequired // RFC 6585, 6
	CodeNetworkConnectTimeout         Code = 599                                      // non-standard
)

// extensions holds reason phrases that the standard library's table does not know about.
var extensions = map[int]string{
	http.StatusTeapot: "I'm a teapot",
	444:               "Connection Closed Without Response",
	499:               "Client Closed Request",
	599:               "Network Connect Timeout Error",
}

// registry is filled once at init and never written afterwards.
var registry = buildRegistry()

func buildRegistry() map[int]string {
	reg := make(map[int]string, 80)
	for code := 100; code < 600; code++ {
		if text := http.StatusText(code); text != "" {
			reg[code] = text
		}
	}

	for code, text := range extensions {
		if _, ok := reg[code]; !ok {
			reg[code] = text
		}
	}

	return reg
}

// StatusText returns the reason phrase for the status code and whether the code is registered.
func StatusText(code int) (string, bool) {
	text, ok := registry[code]
	return text, ok
}

// Registered reports whether the code is a known status code.
func Registered(code int) bool {
	_, ok := registry[code]
	return ok
}

// Codes returns all registered status codes in ascending order.
func Codes() []int {
	codes := lo.Keys(registry)
	slices.Sort(codes)

	return codes
}

// String returns the reason phrase of the code, or "Unknown".
func (c Code) String() string {
	if c == CodeDeclined {
		return "Declined"
	}

	text, ok := StatusText(int(c))
	if !ok {
		return "Unknown"
	}

	return text
}

package paymentControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// CheckoutSession mirrors the hosted gateway's session object. The session id
// is what we persist on the pending Payment row; the payment intent replaces
// it once the gateway confirms.
type CheckoutSession struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status"` // "paid" or "unpaid"
	PaymentIntent string `json:"payment_intent,omitempty"`
	Error         *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// getGatewayConfig reads the gateway endpoint and keys from the environment at
// call time so tests can point it at a stub server.
func getGatewayConfig() (apiURL, secretKey, successURL, cancelURL string, err error) {
	apiURL = os.Getenv("PAY_API_URL")
	secretKey = os.Getenv("PAY_SECRET_KEY")
	successURL = os.Getenv("PAY_SUCCESS_URL")
	cancelURL = os.Getenv("PAY_CANCEL_URL")

	if apiURL == "" || secretKey == "" {
		return "", "", "", "", fmt.Errorf("payment gateway configuration missing")
	}
	return apiURL, secretKey, successURL, cancelURL, nil
}

// CreateCheckoutSession asks the gateway for a hosted checkout page. Amount is
// in halalah (minor units).
func CreateCheckoutSession(amountHalalah int64, currency, description string) (*CheckoutSession, error) {
	apiURL, secretKey, successURL, cancelURL, err := getGatewayConfig()
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"mode": "payment",
		"line_items": []map[string]interface{}{{
			"description": description,
			"amount":      amountHalalah,
			"currency":    currency,
			"quantity":    1,
		}},
		"success_url": successURL + "?session_id={CHECKOUT_SESSION_ID}",
		"cancel_url":  cancelURL,
	}

	jsonData, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", apiURL+"/v1/checkout/sessions", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+secretKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway API error (%d): %s", resp.StatusCode, string(body))
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %v", err)
	}
	if session.Error != nil {
		return nil, fmt.Errorf("gateway error: %s", session.Error.Message)
	}
	if session.ID == "" || session.URL == "" {
		return nil, fmt.Errorf("gateway returned incomplete session")
	}
	return &session, nil
}

// RetrieveCheckoutSession polls the gateway for a session's payment state.
func RetrieveCheckoutSession(sessionID string) (*CheckoutSession, error) {
	apiURL, secretKey, _, _, err := getGatewayConfig()
	if err != nil {
		return nil, err
	}

	req, _ := http.NewRequest("GET", apiURL+"/v1/checkout/sessions/"+sessionID, nil)
	req.Header.Set("Authorization", "Bearer "+secretKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway API error (%d): %s", resp.StatusCode, string(body))
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %v", err)
	}
	return &session, nil
}

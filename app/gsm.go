package app

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	log "github.com/sirupsen/logrus"
)

func accessSecretVersion(client *secretmanager.Client, name string) (string, error) {
	req := &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", Config.GoogleSecretManager.ProjectId, name),
	}

	result, err := client.AccessSecretVersion(context.Background(), req)
	if err != nil {
		return "", err
	}

	return string(result.Payload.Data), nil
}

func readSecretsFromGSM() {
	if !Config.GoogleSecretManager.Enabled {
		log.Debug("[GSM] Google Secret Manager is disabled")
		return
	}

	if Config.GoogleSecretManager.ProjectId == "" {
		log.Fatalf("[GSM] ProjectId is empty")
	}

	ctx := context.Background()
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		log.Fatalf("[GSM] Failed to create secretmanager client: %v", err)
	}
	defer client.Close()

	if Config.ENS.SigningKey == "" && Config.GoogleSecretManager.SigningKeySecretName != "" {
		log.Debug("[GSM] Reading ENS signing key")
		Config.ENS.SigningKey, err = accessSecretVersion(client, Config.GoogleSecretManager.SigningKeySecretName)
		if err != nil {
			log.Fatalf("[GSM] Failed to access ENS signing key: %v", err)
		}
		log.Info("[GSM] Successfully read ENS signing key")
	}

	if Config.Auth.ReceiptSecret == "" && Config.GoogleSecretManager.ReceiptSecretName != "" {
		log.Debug("[GSM] Reading receipt secret")
		Config.Auth.ReceiptSecret, err = accessSecretVersion(client, Config.GoogleSecretManager.ReceiptSecretName)
		if err != nil {
			log.Fatalf("[GSM] Failed to access receipt secret: %v", err)
		}
		log.Info("[GSM] Successfully read receipt secret")
	}

	if Config.Bankr.PartnerKey == "" && Config.GoogleSecretManager.PartnerKeySecretName != "" {
		log.Debug("[GSM] Reading bankr partner key")
		Config.Bankr.PartnerKey, err = accessSecretVersion(client, Config.GoogleSecretManager.PartnerKeySecretName)
		if err != nil {
			log.Fatalf("[GSM] Failed to access bankr partner key: %v", err)
		}
		log.Info("[GSM] Successfully read bankr partner key")
	}

	if Config.Farcaster.NeynarAPIKey == "" && Config.GoogleSecretManager.NeynarKeySecretName != "" {
		log.Debug("[GSM] Reading neynar api key")
		Config.Farcaster.NeynarAPIKey, err = accessSecretVersion(client, Config.GoogleSecretManager.NeynarKeySecretName)
		if err != nil {
			log.Fatalf("[GSM] Failed to access neynar api key: %v", err)
		}
		log.Info("[GSM] Successfully read neynar api key")
	}
}

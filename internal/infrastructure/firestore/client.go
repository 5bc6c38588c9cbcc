package firestore

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// DefaultCredentialsFile ローカル開発で探すサービスアカウント鍵
const DefaultCredentialsFile = "middlemeetup-firestore-key.json"

// FirestoreClient 行程ドラフト保存に使うFirestoreクライアント
type FirestoreClient struct {
	client    *firestore.Client
	projectID string
}

// isCloudRun Cloud Run上で動作しているか（K_SERVICEはCloud Runが設定する）
func isCloudRun() bool {
	return os.Getenv("K_SERVICE") != ""
}

// clientOptions 認証方法を決める
// Cloud Runではデフォルト認証、ローカルでは鍵ファイルがあればそれを使う
func clientOptions(credentialsFile string) []option.ClientOption {
	if isCloudRun() {
		log.Printf("☁️ Cloud Run環境: デフォルト認証を使用")
		return nil
	}
	if credentialsFile == "" {
		credentialsFile = DefaultCredentialsFile
	}
	if _, err := os.Stat(credentialsFile); err != nil {
		log.Printf("⚠️ 認証ファイルが見つかりません: %s（デフォルト認証を試します）", credentialsFile)
		return nil
	}
	log.Printf("📄 認証ファイルを使用: %s", credentialsFile)
	return []option.ClientOption{option.WithCredentialsFile(credentialsFile)}
}

// NewFirestoreClient プロジェクトIDと認証ファイル（任意）からクライアントを作成
func NewFirestoreClient(ctx context.Context, projectID, credentialsFile string) (*FirestoreClient, error) {
	if projectID == "" {
		return nil, fmt.Errorf("FIRESTORE_PROJECT_ID環境変数が設定されていません")
	}

	client, err := firestore.NewClient(ctx, projectID, clientOptions(credentialsFile)...)
	if err != nil {
		return nil, fmt.Errorf("Firestoreクライアントの作成に失敗しました: %w", err)
	}

	log.Printf("✅ Firestore client initialized for project: %s", projectID)
	return &FirestoreClient{client: client, projectID: projectID}, nil
}

// Close クライアントを閉じる
func (fc *FirestoreClient) Close() error {
	return fc.client.Close()
}

// GetClient 内部のFirestoreクライアントを取得
func (fc *FirestoreClient) GetClient() *firestore.Client {
	return fc.client
}

// ProjectID 接続先のプロジェクトID
func (fc *FirestoreClient) ProjectID() string {
	return fc.projectID
}

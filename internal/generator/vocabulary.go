package generator

import "fmt"

// Vocabulary holds the categorical tables documents and queries are drawn from.
type Vocabulary struct {
	Departments   []string
	DocumentTypes []string
	Topics        []string
	TechTerms     []string
	Actions       []string
	Requirements  []string
}

// DefaultVocabulary returns the enterprise vocabulary used for benchmark corpora.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Departments: []string{
			"Engineering", "Product", "Sales", "Marketing", "Finance",
			"Legal", "HR", "Operations", "Customer Success", "Security",
			"Data Science", "DevOps", "QA", "Design", "Research",
		},
		DocumentTypes: []string{
			"policy", "procedure", "guide", "specification", "report",
			"memo", "proposal", "review", "analysis", "summary",
		},
		Topics: []string{
			"authentication", "authorization", "data processing", "API integration",
			"performance optimization", "security compliance", "user onboarding",
			"billing procedures", "incident response", "change management",
			"deployment pipeline", "code review", "testing standards", "monitoring",
			"disaster recovery", "data retention", "access control", "encryption",
			"audit logging", "rate limiting", "caching strategy", "database migration",
			"service mesh", "container orchestration", "CI/CD automation",
			"load balancing", "fault tolerance", "backup procedures", "SLA management",
			"vendor evaluation", "cost optimization", "capacity planning", "scaling",
			"microservices", "API versioning", "schema evolution", "event sourcing",
		},
		TechTerms: []string{
			"Kubernetes", "Docker", "PostgreSQL", "Redis", "Kafka", "gRPC",
			"REST API", "GraphQL", "OAuth 2.0", "JWT", "TLS", "mTLS",
			"Prometheus", "Grafana", "ELK Stack", "Terraform", "Ansible",
			"GitHub Actions", "Jenkins", "ArgoCD", "Istio", "Envoy",
			"S3", "CloudFront", "Lambda", "DynamoDB", "RDS", "EC2",
			"VPC", "IAM", "KMS", "CloudWatch", "SNS", "SQS",
		},
		Actions: []string{
			"configure", "implement", "deploy", "monitor", "optimize",
			"troubleshoot", "validate", "migrate", "upgrade", "secure",
			"audit", "document", "review", "test", "benchmark",
		},
		Requirements: []string{
			"must be completed within 24 hours",
			"requires manager approval",
			"should follow security guidelines",
			"needs to be documented in Confluence",
			"must pass QA review",
			"requires load testing",
			"should be backwards compatible",
			"needs stakeholder sign-off",
			"must meet SLA requirements",
			"requires security review",
		},
	}
}

// Validate reports whether every table has at least one entry.
func (v Vocabulary) Validate() error {
	tables := map[string][]string{
		"departments":    v.Departments,
		"document types": v.DocumentTypes,
		"topics":         v.Topics,
		"tech terms":     v.TechTerms,
		"actions":        v.Actions,
		"requirements":   v.Requirements,
	}
	for name, table := range tables {
		if len(table) == 0 {
			return fmt.Errorf("%w: vocabulary has no %s", ErrInvalidConfig, name)
		}
	}
	return nil
}
